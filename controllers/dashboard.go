package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/clinic-admin-api/db"
	"github.com/clinicdesk/clinic-admin-api/models"
)

func GetDashboardOverview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	role, ok := c.Locals("role").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User role not found in context",
		})
	}

	var statistics struct {
		TotalAppointments int64     `json:"total_appointments"`
		PendingCount      int64     `json:"pending_count"`
		ConfirmedCount    int64     `json:"confirmed_count"`
		CompletedCount    int64     `json:"completed_count"`
		CancelledCount    int64     `json:"cancelled_count"`
		NoShowCount       int64     `json:"no_show_count"`
		TotalServices     int64     `json:"total_services"`
		ActiveTherapies   int64     `json:"active_therapies"`
		TotalRevenue      float64   `json:"total_revenue"`
		LastUpdated       time.Time `json:"last_updated"`
	}

	appointmentQuery := db.DB.Model(&models.Appointment{})
	serviceQuery := db.DB.Model(&models.Service{})
	therapyQuery := db.DB.Model(&models.ActiveTherapy{}).Where("status = ?", models.TherapyInProgress)

	// Organisers see their own schedule; customers their own bookings;
	// admins everything.
	if role == models.RoleOrganiser {
		appointmentQuery = appointmentQuery.Where("provider_id = ?", userID)
		serviceQuery = serviceQuery.Where("provider_id = ?", userID)
	} else if role != models.RoleAdmin {
		appointmentQuery = appointmentQuery.Where("customer_id = ?", userID)
		therapyQuery = therapyQuery.Where("patient_id = ?", userID)
	}

	appointmentQuery.Count(&statistics.TotalAppointments)
	appointmentQuery.Where("status = ?", models.StatusPending).Count(&statistics.PendingCount)
	appointmentQuery.Where("status = ?", models.StatusConfirmed).Count(&statistics.ConfirmedCount)
	appointmentQuery.Where("status = ?", models.StatusCompleted).Count(&statistics.CompletedCount)
	appointmentQuery.Where("status = ?", models.StatusCancelled).Count(&statistics.CancelledCount)
	appointmentQuery.Where("status = ?", models.StatusNoShow).Count(&statistics.NoShowCount)

	serviceQuery.Count(&statistics.TotalServices)
	therapyQuery.Count(&statistics.ActiveTherapies)

	// Revenue from completed appointments
	revenueQuery := db.DB.Table("appointments").
		Joins("JOIN services ON appointments.service_id = services.id").
		Where("appointments.status = ?", models.StatusCompleted)

	if role == models.RoleOrganiser {
		revenueQuery = revenueQuery.Where("appointments.provider_id = ?", userID)
	} else if role != models.RoleAdmin {
		revenueQuery = revenueQuery.Where("appointments.customer_id = ?", userID)
	}

	revenueQuery.Select("COALESCE(SUM(services.price), 0)").Scan(&statistics.TotalRevenue)

	statistics.LastUpdated = time.Now()

	return c.JSON(statistics)
}
