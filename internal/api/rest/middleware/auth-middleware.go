package middleware

import (
	"errors"
	"time"

	"github.com/LifeDrop/donor_service/internal/helper"
	"github.com/LifeDrop/donor_service/internal/session"
	"github.com/gofiber/fiber/v2"
)

const SessionCookie = "session_id"

// SessionGuard runs on every authenticated route. It loads the session
// behind the opaque cookie, force-expires one idle past the configured
// threshold, and otherwise stamps the current time as last activity
// before the handler runs. Routes registered after this middleware
// cannot bypass the check.
func SessionGuard(store *session.Store) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sid := ctx.Cookies(SessionCookie)
		if sid == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}

		sess, err := store.Touch(ctx.UserContext(), sid)
		if err != nil {
			ClearSessionCookie(ctx)
			if errors.Is(err, session.ErrExpired) {
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error":    "Your session expired due to inactivity",
					"timeout":  true,
					"redirect": "/login?timeout=1",
				})
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}

		ctx.Locals("session", sess)
		ctx.Locals("userID", sess.UserID)
		ctx.Locals("role", sess.Role)
		return ctx.Next()
	}
}

// RequireRoles gates a route on exact role membership. The predicate
// itself lives in helper.RoleAllowed; this only wires it to fiber.
func RequireRoles(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, ok := ctx.Locals("role").(string)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}
		if !helper.RoleAllowed(role, roles...) {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this page",
			})
		}
		return ctx.Next()
	}
}

func SetSessionCookie(ctx *fiber.Ctx, sid string, maxAge time.Duration) {
	ctx.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   int(maxAge.Seconds()),
	})
}

func ClearSessionCookie(ctx *fiber.Ctx) {
	ctx.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   -1,
	})
}

// CurrentUserID reads the authenticated account id set by SessionGuard.
func CurrentUserID(ctx *fiber.Ctx) (uint, bool) {
	id, ok := ctx.Locals("userID").(uint)
	return id, ok && id != 0
}
