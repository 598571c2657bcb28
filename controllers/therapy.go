package controllers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicdesk/clinic-admin-api/db"
	"github.com/clinicdesk/clinic-admin-api/models"
	"github.com/clinicdesk/clinic-admin-api/realtime"
	"github.com/clinicdesk/clinic-admin-api/utils"
)

// GetAllTherapies lists active therapies, optionally filtered by patient or
// status.
func GetAllTherapies(c *fiber.Ctx) error {
	query := db.DB.Preload("Patient").Preload("Service")

	if patient := c.Query("patient_id"); patient != "" {
		query = query.Where("patient_id = ?", patient)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var therapies []models.ActiveTherapy
	if err := query.Find(&therapies).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch therapies",
			Error:   err.Error(),
		})
	}
	return c.JSON(therapies)
}

// GetTherapy returns a therapy with its day logs
func GetTherapy(c *fiber.Ctx) error {
	id := c.Params("id")
	therapy, err := loadTherapy(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Therapy not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(therapy)
}

// CreateTherapy starts a new multi-day therapy for a patient
func CreateTherapy(c *fiber.Ctx) error {
	therapy := new(models.ActiveTherapy)
	if err := c.BodyParser(therapy); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if therapy.TotalDays <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Total days must be positive",
		})
	}

	var patient models.User
	if err := db.DB.First(&patient, therapy.PatientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Create(&therapy).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create therapy",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(therapy)
}

// UpsertDayLog writes one day's log for a therapy. The write is keyed by
// (therapy, day); concurrent editors of the same day are last-write-wins.
func UpsertDayLog(c *fiber.Ctx) error {
	therapyID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid therapy ID",
		})
	}
	day, err := c.ParamsInt("day")
	if err != nil || day < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid day number",
		})
	}

	var therapy models.ActiveTherapy
	if err := db.DB.First(&therapy, therapyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Therapy not found",
		})
	}
	if day > therapy.TotalDays {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Day %d is beyond the %d-day plan", day, therapy.TotalDays),
		})
	}

	var body struct {
		PainLevel int    `json:"pain_level"`
		Notes     string `json:"notes"`
		Status    string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	entry := models.TherapyLog{
		TherapyID: uint(therapyID),
		Day:       day,
		PainLevel: body.PainLevel,
		Notes:     body.Notes,
		Status:    body.Status,
	}
	if err := db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "therapy_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"pain_level", "notes", "status", "updated_at"}),
	}).Create(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save day log",
		})
	}

	publishTherapy(uint(therapyID))
	return c.JSON(entry)
}

// CompleteDay marks the therapy's current day as done and advances the
// counter; completing the final day flips the therapy to COMPLETED without
// moving past the last day.
func CompleteDay(c *fiber.Ctx) error {
	therapyID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid therapy ID",
		})
	}

	var therapy models.ActiveTherapy
	advanced := false
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&therapy, therapyID).Error; err != nil {
			return err
		}

		doneDay := therapy.CurrentDay
		if !therapy.CompleteDay() {
			// Already completed; leave the final day's log as the
			// editor last wrote it.
			return nil
		}
		advanced = true

		entry := models.TherapyLog{
			TherapyID: therapy.ID,
			Day:       doneDay,
			Status:    "done",
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "therapy_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&entry).Error; err != nil {
			return err
		}

		return tx.Model(&therapy).Updates(map[string]interface{}{
			"current_day": therapy.CurrentDay,
			"status":      therapy.Status,
		}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to complete day: " + err.Error(),
		})
	}

	if !advanced {
		return c.JSON(fiber.Map{
			"message": "Therapy already completed",
			"therapy": therapy,
		})
	}

	publishTherapy(therapy.ID)

	return c.JSON(fiber.Map{
		"message": "Day completed",
		"therapy": therapy,
	})
}

// StreamTherapy pushes the therapy snapshot to the client over SSE on every
// change, starting with the current state. The subscription is torn down
// when the client disconnects.
func StreamTherapy(c *fiber.Ctx) error {
	therapyID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid therapy ID",
		})
	}

	therapy, err := loadTherapy(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Therapy not found",
		})
	}
	initial, err := json.Marshal(therapy)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to encode therapy",
		})
	}

	sub, err := realtime.Default.SubscribeTherapy(context.Background(), uint(therapyID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to subscribe to therapy updates",
		})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer sub.Close()

		fmt.Fprintf(w, "data: %s\n\n", initial)
		if err := w.Flush(); err != nil {
			return
		}

		for payload := range sub.C {
			fmt.Fprintf(w, "data: %s\n\n", payload)
			if err := w.Flush(); err != nil {
				// Client went away
				return
			}
		}
	})
	return nil
}

// TherapyStreamStats reports how many SSE subscribers this node is serving
func TherapyStreamStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"connected_clients": realtime.Default.SubscriberCount(),
	})
}

func loadTherapy(id string) (*models.ActiveTherapy, error) {
	var therapy models.ActiveTherapy
	err := db.DB.Preload("Logs", func(db *gorm.DB) *gorm.DB {
		return db.Order("day asc")
	}).Preload("Patient").First(&therapy, id).Error
	if err != nil {
		return nil, err
	}
	therapy.Patient.Password = ""
	return &therapy, nil
}

// publishTherapy pushes the current snapshot to the realtime broker. A
// publish failure only costs liveness, never the write itself.
func publishTherapy(therapyID uint) {
	therapy, err := loadTherapy(fmt.Sprint(therapyID))
	if err != nil {
		log.Printf("Failed to load therapy %d for publish: %v", therapyID, err)
		return
	}
	if err := realtime.Default.PublishTherapy(context.Background(), therapyID, therapy); err != nil {
		log.Printf("Failed to publish therapy %d update: %v", therapyID, err)
	}
}
