package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/clinic-admin-api/controllers"
	"github.com/clinicdesk/clinic-admin-api/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments", middleware.Protected())

	appointment.Get("/", middleware.RequirePermission("appointments", "read"), controllers.GetAllAppointments)
	appointment.Get("/conflicts", middleware.RequirePermission("appointments", "read"), controllers.CheckConflicts)
	appointment.Get("/:id", middleware.RequirePermission("appointments", "read"), controllers.GetAppointment)
	appointment.Post("/", middleware.RequirePermission("appointments", "create"), controllers.CreateAppointment)
	appointment.Post("/plan", middleware.RequirePermission("appointments", "create"), controllers.CreateTreatmentPlan)
	appointment.Patch("/:id", middleware.RequirePermission("appointments", "update"), controllers.UpdateAppointment)
	appointment.Patch("/:id/status", middleware.RequirePermission("appointments", "update"), controllers.UpdateAppointmentStatus)
	appointment.Delete("/:id", middleware.RequirePermission("appointments", "delete"), controllers.DeleteAppointment)
}
