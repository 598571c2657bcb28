package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/clinic-admin-api/controllers"
	"github.com/clinicdesk/clinic-admin-api/middleware"
)

// SetupDashboardRoutes configures the dashboard overview route
func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/dashboard", middleware.Protected(), controllers.GetDashboardOverview)
}

// SetupNotificationRoutes configures the notification routes
func SetupNotificationRoutes(app *fiber.App) {
	notifications := app.Group("/notifications", middleware.Protected())
	notifications.Get("/", controllers.GetMyNotifications)
	notifications.Patch("/:id/read", controllers.MarkNotificationRead)
}
