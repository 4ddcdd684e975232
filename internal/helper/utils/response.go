package utils

import "github.com/gofiber/fiber/v2"

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

// ResponseMessage mirrors the flash-style outcome messages the flows
// attach to the next page: a message plus an optional redirect target.
func ResponseMessage(ctx *fiber.Ctx, status int, msg, redirect string) error {
	body := fiber.Map{"message": msg}
	if redirect != "" {
		body["redirect"] = redirect
	}
	return ctx.Status(status).JSON(body)
}
