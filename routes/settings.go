package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/clinic-admin-api/controllers"
	"github.com/clinicdesk/clinic-admin-api/middleware"
)

// SetupSettingsRoutes configures the clinic settings routes
func SetupSettingsRoutes(app *fiber.App) {
	settings := app.Group("/settings", middleware.Protected())

	settings.Get("/:category", middleware.RequirePermission("settings", "read"), controllers.GetSettings)
	settings.Patch("/:category", middleware.RequirePermission("settings", "update"), controllers.UpdateSettings)
}
