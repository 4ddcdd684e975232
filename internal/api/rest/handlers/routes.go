package handlers

import (
	"github.com/LifeDrop/donor_service/internal/api/rest/middleware"
	"github.com/LifeDrop/donor_service/internal/domain"
	"github.com/LifeDrop/donor_service/internal/session"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers the public surface first, then mounts the
// session guard; everything registered after it runs behind the guard
// and cannot opt out.
func SetupRoutes(
	app *fiber.App,
	store *session.Store,
	auth *AuthHandler,
	profile *ProfileHandler,
	notifications *NotificationHandler,
	requests *RequestHandler,
	dashboards *DashboardHandler,
) {
	api := app.Group("/api")

	pub := api.Group("/auth")
	pub.Post("/register", auth.Register)
	pub.Post("/login", auth.Login)
	pub.Get("/verify-email/:uid/:token", auth.VerifyEmail)
	pub.Post("/resend-verification", auth.ResendVerification)
	pub.Post("/forgot-password", auth.ForgotPassword)
	pub.Post("/reset-password", auth.SetPassword)

	app.Use(middleware.SessionGuard(store))

	api.Post("/auth/logout", auth.Logout)

	user := api.Group("/user")
	user.Get("/profile", profile.GetProfile)
	user.Patch("/profile", profile.UpdateProfile)
	user.Post("/profile/picture", profile.UploadPicture)
	user.Post("/availability", middleware.RequireRoles(domain.RoleDonor), profile.SetAvailability)
	user.Post("/password", profile.ChangePassword)
	user.Post("/deactivate", auth.Deactivate)
	user.Get("/login-history", profile.LoginHistory)

	notif := api.Group("/notifications")
	notif.Get("/", notifications.List)
	notif.Post("/:id/read", notifications.MarkRead)
	notif.Get("/unread-count", notifications.UnreadCount)

	req := api.Group("/requests")
	req.Post("/", middleware.RequireRoles(domain.RoleSeeker), requests.Create)
	req.Get("/", middleware.RequireRoles(domain.RoleSeeker), requests.ListOwn)
	req.Get("/open", middleware.RequireRoles(domain.RoleDonor), requests.ListOpen)

	dash := api.Group("/dashboard")
	dash.Get("/donor", middleware.RequireRoles(domain.RoleDonor), dashboards.Donor)
	dash.Get("/seeker", middleware.RequireRoles(domain.RoleSeeker), dashboards.Seeker)
	dash.Get("/admin", middleware.RequireRoles(domain.RoleAdmin), dashboards.Admin)
}
