package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clinicdesk/clinic-admin-api/db"
	"github.com/clinicdesk/clinic-admin-api/models"
	"github.com/clinicdesk/clinic-admin-api/utils"
)

// GetAllAppointments returns all appointments
func GetAllAppointments(c *fiber.Ctx) error {
	query := db.DB.Preload("Service").Preload("Provider").Preload("Customer")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		if fromDate, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("start_time >= ?", fromDate)
		}
	}
	if to := c.Query("to"); to != "" {
		if toDate, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("start_time < ?", toDate.AddDate(0, 0, 1))
		}
	}

	var appointments []models.Appointment
	if err := query.Order("start_time asc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment returns an appointment by ID
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Service").Preload("Provider").Preload("Customer").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CreateAppointment creates a single appointment. The end time is derived
// from the service duration; the start must fall inside the service's
// working hours.
func CreateAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := c.BodyParser(&appointment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var service models.Service
	if err := db.DB.First(&service, appointment.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
			Error:   err.Error(),
		})
	}
	if !service.IsActive {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Service is not currently bookable",
		})
	}

	appointment.StartTime = utils.ToClinicTime(appointment.StartTime)

	isWorkingHour, err := utils.CheckWorkingDayAndHours(service.ID, appointment.StartTime)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error checking working hours",
			Error:   err.Error(),
		})
	}
	if !isWorkingHour {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Appointment is outside working hours or during break",
		})
	}

	appointment.EndTime = appointment.StartTime.Add(service.Duration())
	if appointment.ProviderID == 0 {
		appointment.ProviderID = service.ProviderID
	}

	if err := db.DB.Create(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}

	sendAppointmentEmail(&appointment, &service, "Appointment Created",
		"Your appointment has been scheduled.")

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// UpdateAppointment applies partial updates; status changes go through the
// dedicated transition endpoint.
func UpdateAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var updated models.Appointment
	if err := c.BodyParser(&updated); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var existing models.Appointment
	if err := db.DB.First(&existing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if updated.Title == "" {
		updated.Title = existing.Title
	}
	if updated.Description == "" {
		updated.Description = existing.Description
	}
	if updated.ServiceID == 0 {
		updated.ServiceID = existing.ServiceID
	}
	if updated.ProviderID == 0 {
		updated.ProviderID = existing.ProviderID
	}
	if updated.CustomerID == 0 {
		updated.CustomerID = existing.CustomerID
	}
	if updated.StartTime.IsZero() {
		updated.StartTime = existing.StartTime
		updated.EndTime = existing.EndTime
	} else {
		var service models.Service
		if err := db.DB.First(&service, updated.ServiceID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Service not found",
				Error:   err.Error(),
			})
		}
		updated.StartTime = utils.ToClinicTime(updated.StartTime)
		updated.EndTime = updated.StartTime.Add(service.Duration())
	}
	// Do Not Change Status
	updated.Status = existing.Status

	if err := db.DB.Model(&existing).Where("id = ?", id).Updates(updated).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment",
			Error:   err.Error(),
		})
	}
	return c.JSON(updated)
}

// UpdateAppointmentStatus moves an appointment to a new status. Any status
// may move to any other; repeating the current status is a no-op. Completion
// writes the post-treatment notification in the same transaction and then
// emails the customer.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	appointmentID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment ID",
		})
	}

	var updateData struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	newStatus := models.AppointmentStatus(updateData.Status)
	if !models.ValidStatus(newStatus) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status. Must be 'pending', 'confirmed', 'cancelled', 'completed', or 'no-show'.",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	becameCompleted := appointment.Status != models.StatusCompleted && newStatus == models.StatusCompleted

	if err := appointment.UpdateStatus(db.DB, newStatus); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if becameCompleted {
		var service models.Service
		if err := db.DB.First(&service, appointment.ServiceID).Error; err == nil && service.PostPrecautions != "" {
			sendAppointmentEmail(&appointment, &service,
				fmt.Sprintf("Aftercare: %s", service.Name), service.PostPrecautions)
		}
	}

	return c.JSON(fiber.Map{
		"message":     "Appointment status updated successfully",
		"appointment": appointment,
	})
}

// DeleteAppointment removes an appointment that has not yet run
func DeleteAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	// Prevent deletion of completed or cancelled appointments
	if appointment.Status == models.StatusCompleted || appointment.Status == models.StatusCancelled {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Cannot delete a completed or cancelled appointment",
		})
	}

	if err := db.DB.Delete(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete appointment",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CheckConflicts answers, for each of the requested consecutive days,
// whether an existing non-cancelled appointment already starts at the same
// date and time.
func CheckConflicts(c *fiber.Ctx) error {
	startDate, err := time.ParseInLocation("2006-01-02", c.Query("start_date"), utils.ClinicLocation())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid or missing start_date, want YYYY-MM-DD",
		})
	}
	days := c.QueryInt("days", 1)
	startTime := c.Query("start_time")

	results, err := utils.CheckConflicts(db.DB, startDate, days, startTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Conflict check failed",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"conflicts":    results,
		"has_conflict": utils.HasConflict(results),
	})
}

// CreateTreatmentPlan expands a date range into one appointment per day and
// commits them atomically. Inside the transaction the plan takes one
// advisory lock per day and re-runs the conflict scan, so concurrent plans
// over overlapping days commit one at a time and the second one sees the
// first one's rows.
func CreateTreatmentPlan(c *fiber.Ctx) error {
	var body struct {
		CustomerID uint   `json:"customer_id"`
		ServiceID  uint   `json:"service_id"`
		Title      string `json:"title"`
		StartDate  string `json:"start_date"` // YYYY-MM-DD
		StartTime  string `json:"start_time"` // HH:MM
		Days       int    `json:"days"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if body.Days <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Day count must be positive",
		})
	}

	start, err := time.ParseInLocation("2006-01-02 15:04",
		fmt.Sprintf("%s %s", body.StartDate, body.StartTime), utils.ClinicLocation())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid start_date or start_time",
			Error:   err.Error(),
		})
	}

	var customer models.User
	if err := db.DB.First(&customer, body.CustomerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Customer not found",
			Error:   err.Error(),
		})
	}

	var service models.Service
	if err := db.DB.First(&service, body.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
			Error:   err.Error(),
		})
	}

	title := body.Title
	if title == "" {
		title = fmt.Sprintf("%s — day plan", service.Name)
	}

	plan := utils.BuildTreatmentPlan(customer.ID, &service, title, start, body.Days)

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// Held until commit; ascending order keeps overlapping windows
		// deadlock-free.
		for _, key := range utils.PlanLockKeys(start, body.Days) {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", key).Error; err != nil {
				return err
			}
		}

		results, err := utils.CheckConflicts(tx, start, body.Days, body.StartTime)
		if err != nil {
			return err
		}
		if utils.HasConflict(results) {
			return fmt.Errorf("plan conflicts with existing appointments")
		}
		for i := range plan {
			if err := tx.Create(&plan[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Failed to create treatment plan",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Treatment plan created",
		"appointments": plan,
		"count":        len(plan),
	})
}

// sendAppointmentEmail delivers a courtesy email to the appointment's
// customer. Delivery failure is logged, never surfaced; the primary write
// has already committed.
func sendAppointmentEmail(appointment *models.Appointment, service *models.Service, subject, lead string) {
	var customer models.User
	if err := db.DB.First(&customer, appointment.CustomerID).Error; err != nil {
		log.Printf("Skipping email for appointment %d: customer not found", appointment.ID)
		return
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>%s</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Best regards,<br>Your Clinic Team</p>
	`, customer.Name, lead, service.Name,
		appointment.StartTime.Format("2006-01-02 15:04:05"),
		appointment.EndTime.Format("2006-01-02 15:04:05"),
		appointment.Status)

	if err := utils.SendEmail(customer.Email, subject, body); err != nil {
		log.Printf("Failed to send email for appointment %d: %v", appointment.ID, err)
	}
}
