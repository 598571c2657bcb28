package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/clinic-admin-api/controllers"
	"github.com/clinicdesk/clinic-admin-api/middleware"
)

func SetupServiceRoutes(app *fiber.App) {
	service := app.Group("/services")
	service.Get("/", controllers.GetAllServices)
	service.Get("/:id", controllers.GetService)
	service.Get("/:id/working-hours", controllers.GetServiceWorkingHours)
	service.Post("/", middleware.Protected(), middleware.RequirePermission("services", "create"), controllers.CreateService)
	service.Put("/:id", middleware.Protected(), middleware.RequirePermission("services", "update"), controllers.UpdateService)
	service.Patch("/:id/active", middleware.Protected(), middleware.RequirePermission("services", "update"), controllers.SetServiceActive)
	service.Delete("/:id", middleware.Protected(), middleware.RequirePermission("services", "delete"), controllers.DeleteService)

	workingHour := app.Group("/working-hours")
	workingHour.Post("/", middleware.Protected(), middleware.RequirePermission("services", "update"), controllers.CreateWorkingHour)
	workingHour.Patch("/:id", middleware.Protected(), middleware.RequirePermission("services", "update"), controllers.UpdateWorkingHour)
	workingHour.Delete("/:id", middleware.Protected(), middleware.RequirePermission("services", "update"), controllers.DeleteWorkingHour)
}
