package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/clinic-admin-api/controllers"
	"github.com/clinicdesk/clinic-admin-api/middleware"
)

// SetupTherapyRoutes configures the active therapy tracker routes
func SetupTherapyRoutes(app *fiber.App) {
	therapy := app.Group("/therapies", middleware.Protected())

	therapy.Get("/", middleware.RequirePermission("therapies", "read"), controllers.GetAllTherapies)
	therapy.Get("/stats", middleware.RequirePermission("therapies", "read"), controllers.TherapyStreamStats)
	therapy.Get("/:id", middleware.RequirePermission("therapies", "read"), controllers.GetTherapy)
	therapy.Get("/:id/stream", middleware.RequirePermission("therapies", "read"), controllers.StreamTherapy)
	therapy.Post("/", middleware.RequirePermission("therapies", "create"), controllers.CreateTherapy)
	therapy.Put("/:id/logs/:day", middleware.RequirePermission("therapies", "update"), controllers.UpsertDayLog)
	therapy.Post("/:id/complete-day", middleware.RequirePermission("therapies", "update"), controllers.CompleteDay)
}
