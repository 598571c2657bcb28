package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/clinic-admin-api/controllers"
	"github.com/clinicdesk/clinic-admin-api/middleware"
)

// SetupUserRoutes configures all user management routes
func SetupUserRoutes(app *fiber.App) {
	users := app.Group("/users", middleware.Protected())

	users.Get("/", middleware.RequirePermission("users", "read"), controllers.GetAllUsers)
	users.Get("/:id", middleware.RequirePermission("users", "read"), controllers.GetUser)
	users.Post("/", middleware.RequirePermission("users", "create"), controllers.CreateUser)
	users.Patch("/:id", middleware.RequirePermission("users", "update"), controllers.UpdateUser)
	users.Patch("/:id/role", middleware.RequireRole("admin"), controllers.UpdateUserRole)
	users.Delete("/:id", middleware.RequirePermission("users", "delete"), controllers.DeleteUser)
}
