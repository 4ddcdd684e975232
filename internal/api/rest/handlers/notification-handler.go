package handlers

import (
	"errors"

	"github.com/LifeDrop/donor_service/internal/api/rest/middleware"
	"github.com/LifeDrop/donor_service/internal/helper/utils"
	"github.com/LifeDrop/donor_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	svc services.NotificationService
}

func NewNotificationHandler(svc services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	rows, err := h.svc.List(userID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load notifications")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, rows)
}

func (h *NotificationHandler) MarkRead(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ResponseError(ctx, fiber.StatusNotFound, services.ErrNotificationNotFound.Error())
	}

	if err := h.svc.MarkRead(uint(id), userID); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to mark notification read")
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success"})
}

func (h *NotificationHandler) UnreadCount(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	count, err := h.svc.UnreadCount(userID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to count notifications")
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"count": count})
}
