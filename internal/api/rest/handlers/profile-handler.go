package handlers

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/LifeDrop/donor_service/internal/api/rest/middleware"
	"github.com/LifeDrop/donor_service/internal/dto"
	"github.com/LifeDrop/donor_service/internal/helper/utils"
	"github.com/LifeDrop/donor_service/internal/services"
	imageutil "github.com/LifeDrop/donor_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const maxPictureSize = 5 * 1024 * 1024 // 5MB

type ProfileHandler struct {
	svc services.UserService
}

func NewProfileHandler(svc services.UserService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) GetProfile(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.svc.GetProfile(userID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.ToUserProfileResponse(user))
}

func (h *ProfileHandler) UpdateProfile(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.UpdateUserProfile
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.UpdateProfile(userID, requestBody)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": vErr.Message,
				"field": vErr.Field,
			})
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.ToUserProfileResponse(user))
}

func (h *ProfileHandler) SetAvailability(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.SetAvailabilityRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.SetAvailability(userID, requestBody.IsAvailable)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	status := "unavailable"
	if user.IsAvailable {
		status = "available"
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK,
		"You are now "+status+" for donation requests", "")
}

// POST /api/user/profile/picture
// form-data: file=<image>
func (h *ProfileHandler) UploadPicture(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	if !allowed[ext] {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "only jpg/jpeg/png/webp allowed")
	}
	if file.Size > maxPictureSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
	}
	defer f.Close()

	raw, err := imageutil.ReadAllLimit(f, maxPictureSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	normalized, err := imageutil.NormalizeToJPG(raw, 1024, 85)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "unsupported image")
	}

	url, err := h.svc.UploadProfilePicture(ctx.UserContext(), userID, "", normalized)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"profile_picture": url})
}

func (h *ProfileHandler) ChangePassword(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.ChangePasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.ChangePassword(userID, requestBody.OldPassword, requestBody.NewPassword); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "Password changed successfully", "")
}

func (h *ProfileHandler) LoginHistory(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	rows, err := h.svc.LoginHistory(userID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load login history")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, rows)
}
