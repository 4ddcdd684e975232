package handlers

import (
	"errors"
	"time"

	"github.com/LifeDrop/donor_service/internal/api/rest/middleware"
	"github.com/LifeDrop/donor_service/internal/domain"
	"github.com/LifeDrop/donor_service/internal/dto"
	"github.com/LifeDrop/donor_service/internal/helper"
	"github.com/LifeDrop/donor_service/internal/helper/utils"
	"github.com/LifeDrop/donor_service/internal/services"
	"github.com/LifeDrop/donor_service/internal/session"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc      services.UserService
	sessions *session.Store
	maxAge   time.Duration
}

func NewAuthHandler(svc services.UserService, sessions *session.Store, maxAge time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions, maxAge: maxAge}
}

// DashboardRoute maps an account role to its dashboard. Unmapped roles
// land on the admin dashboard.
func DashboardRoute(role string) string {
	switch role {
	case domain.RoleDonor:
		return "/dashboard/donor"
	case domain.RoleSeeker:
		return "/dashboard/seeker"
	default:
		return "/dashboard/admin"
	}
}

func (h *AuthHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if _, err := h.svc.Register(requestBody); err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": vErr.Message,
				"field": vErr.Field,
			})
		}
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
				"field": "email",
			})
		case errors.Is(err, services.ErrUsernameTaken):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
				"field": "username",
			})
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	return utils.ResponseMessage(ctx, fiber.StatusCreated,
		"Account created. Check your email to verify your account.",
		"/registration-success")
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.svc.Login(requestBody, ctx.IP(), ctx.Get("User-Agent"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBlankCredentials):
			return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNotVerified):
			return utils.ResponseMessage(ctx, fiber.StatusForbidden, err.Error(), "/resend-verification")
		default:
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, services.ErrInvalidCredentials.Error())
		}
	}

	if user.IsActive {
		sess, err := h.sessions.Create(ctx.UserContext(), user.ID, user.Role)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not establish session")
		}
		middleware.SetSessionCookie(ctx, sess.ID, h.maxAge)
		return utils.ResponseMessage(ctx, fiber.StatusOK, "Logged in", DashboardRoute(user.Role))
	}

	// Inactive accounts fall through to the role→dashboard table with no
	// session. Kept as designed; see DESIGN.md before changing it.
	return utils.ResponseMessage(ctx, fiber.StatusOK, "", DashboardRoute(user.Role))
}

func (h *AuthHandler) Logout(ctx *fiber.Ctx) error {
	sid := ctx.Cookies(middleware.SessionCookie)
	if sid != "" {
		_ = h.sessions.Destroy(ctx.UserContext(), sid)
	}
	middleware.ClearSessionCookie(ctx)
	return utils.ResponseMessage(ctx, fiber.StatusOK, "Logged out", "/")
}

// Deactivate soft-deletes the caller's own account and ends the
// session. The record itself is never hard-deleted.
func (h *AuthHandler) Deactivate(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.svc.Deactivate(userID); err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	if sid := ctx.Cookies(middleware.SessionCookie); sid != "" {
		_ = h.sessions.Destroy(ctx.UserContext(), sid)
	}
	middleware.ClearSessionCookie(ctx)
	return utils.ResponseMessage(ctx, fiber.StatusOK,
		"Your account has been deactivated", "/")
}

func (h *AuthHandler) VerifyEmail(ctx *fiber.Ctx) error {
	user, err := h.svc.VerifyEmail(ctx.Params("uid"), ctx.Params("token"))
	if err != nil {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest,
			services.ErrInvalidLink.Error(), "/verification-failed")
	}

	// Verification logs the account in, as registration promised.
	sess, err := h.sessions.Create(ctx.UserContext(), user.ID, user.Role)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not establish session")
	}
	middleware.SetSessionCookie(ctx, sess.ID, h.maxAge)
	return utils.ResponseMessage(ctx, fiber.StatusOK,
		"Your account has been verified", "/verification-success")
}

func (h *AuthHandler) ResendVerification(ctx *fiber.Ctx) error {
	var requestBody dto.ResendVerificationRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid email")
	}

	err := h.svc.ResendVerification(requestBody.Email)
	switch {
	case err == nil:
		return utils.ResponseMessage(ctx, fiber.StatusOK,
			"Verification email resent successfully", "/login")
	case errors.Is(err, services.ErrAlreadyVerified):
		return utils.ResponseMessage(ctx, fiber.StatusOK, err.Error(), "/login")
	case errors.Is(err, services.ErrUserNotFound):
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	default:
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
}

func (h *AuthHandler) ForgotPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ForgotPasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid email")
	}

	if err := h.svc.ForgotPassword(requestBody.Email); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK,
		"Check your email for a password reset link", "/login")
}

func (h *AuthHandler) SetPassword(ctx *fiber.Ctx) error {
	var requestBody dto.SetPasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid input")
	}

	if err := h.svc.SetPassword(requestBody); err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, vErr.Message)
		}
		return utils.ResponseError(ctx, fiber.StatusBadRequest, helper.ErrInvalidToken.Error())
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "Password reset successful", "/login")
}
