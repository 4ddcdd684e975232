package handlers

import (
	"github.com/LifeDrop/donor_service/internal/api/rest/middleware"
	"github.com/LifeDrop/donor_service/internal/domain"
	"github.com/LifeDrop/donor_service/internal/dto"
	"github.com/LifeDrop/donor_service/internal/helper/utils"
	"github.com/LifeDrop/donor_service/internal/repository"
	"github.com/LifeDrop/donor_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the role-specific landing views. Every route
// here sits behind SessionGuard plus a RequireRoles gate.
type DashboardHandler struct {
	userSvc      services.UserService
	notifSvc     services.NotificationService
	requestSvc   services.RequestService
	userRepo     repository.UserRepository
	activityRepo repository.LoginActivityRepository
}

func NewDashboardHandler(
	userSvc services.UserService,
	notifSvc services.NotificationService,
	requestSvc services.RequestService,
	userRepo repository.UserRepository,
	activityRepo repository.LoginActivityRepository,
) *DashboardHandler {
	return &DashboardHandler{
		userSvc:      userSvc,
		notifSvc:     notifSvc,
		requestSvc:   requestSvc,
		userRepo:     userRepo,
		activityRepo: activityRepo,
	}
}

func (h *DashboardHandler) Donor(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.userSvc.GetProfile(userID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	}
	unread, _ := h.notifSvc.UnreadCount(userID)
	open, err := h.requestSvc.ListOpen()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load dashboard")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"profile":       dto.ToUserProfileResponse(user),
		"is_available":  user.IsAvailable,
		"unread_count":  unread,
		"open_requests": open,
	})
}

func (h *DashboardHandler) Seeker(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.userSvc.GetProfile(userID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	}
	requests, err := h.requestSvc.ListOwn(userID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load dashboard")
	}
	unread, _ := h.notifSvc.UnreadCount(userID)

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"profile":      dto.ToUserProfileResponse(user),
		"requests":     requests,
		"unread_count": unread,
	})
}

func (h *DashboardHandler) Admin(ctx *fiber.Ctx) error {
	donors, err := h.userRepo.CountByRole(domain.RoleDonor)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load dashboard")
	}
	seekers, _ := h.userRepo.CountByRole(domain.RoleSeeker)
	recent, err := h.activityRepo.ListRecent(50)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load dashboard")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"donor_count":   donors,
		"seeker_count":  seekers,
		"recent_logins": recent,
	})
}
