package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/clinicdesk/clinic-admin-api/cron"
	"github.com/clinicdesk/clinic-admin-api/db"
	"github.com/clinicdesk/clinic-admin-api/realtime"
	"github.com/clinicdesk/clinic-admin-api/redis"
	"github.com/clinicdesk/clinic-admin-api/routes"
)

func main() {
	app := fiber.New()

	db.Init()
	redis.InitRedis()
	realtime.Init(redis.Client)
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Clinic Admin API")
	})

	routes.SetupAuthRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupRBACRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupTherapyRoutes(app)
	routes.SetupSettingsRoutes(app)
	routes.SetupDashboardRoutes(app)
	routes.SetupNotificationRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
