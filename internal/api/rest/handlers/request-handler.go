package handlers

import (
	"errors"

	"github.com/LifeDrop/donor_service/internal/api/rest/middleware"
	"github.com/LifeDrop/donor_service/internal/dto"
	"github.com/LifeDrop/donor_service/internal/helper/utils"
	"github.com/LifeDrop/donor_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type RequestHandler struct {
	svc     services.RequestService
	userSvc services.UserService
}

func NewRequestHandler(svc services.RequestService, userSvc services.UserService) *RequestHandler {
	return &RequestHandler{svc: svc, userSvc: userSvc}
}

func (h *RequestHandler) Create(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.CreateBloodRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	seeker, err := h.userSvc.GetProfile(userID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	req, err := h.svc.Create(seeker, requestBody)
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
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, req)
}

func (h *RequestHandler) ListOwn(ctx *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	rows, err := h.svc.ListOwn(userID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load requests")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, rows)
}

func (h *RequestHandler) ListOpen(ctx *fiber.Ctx) error {
	rows, err := h.svc.ListOpen()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to load requests")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, rows)
}
