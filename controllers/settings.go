package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicdesk/clinic-admin-api/db"
	"github.com/clinicdesk/clinic-admin-api/models"
	"github.com/clinicdesk/clinic-admin-api/utils"
)

// GetSettings returns one settings category. A category that has never been
// saved comes back as an empty object rather than a 404.
func GetSettings(c *fiber.Ctx) error {
	category := models.SettingsCategory(c.Params("category"))
	if !models.ValidSettingsCategory(category) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Unknown settings category",
		})
	}

	var settings models.ClinicSettings
	err := db.DB.Where("category = ?", category).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{
			"category": category,
			"payload":  fiber.Map{},
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch settings",
			Error:   err.Error(),
		})
	}

	return c.JSON(settings)
}

// UpdateSettings merges the submitted fields into one settings category.
// Keys the caller did not send keep their stored values, so two admins
// editing different fields of the same category do not clobber each other.
func UpdateSettings(c *fiber.Ctx) error {
	category := models.SettingsCategory(c.Params("category"))
	if !models.ValidSettingsCategory(category) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Unknown settings category",
		})
	}

	incoming := models.SettingsPayload(c.Body())
	if err := models.ValidateSettingsPayload(category, incoming); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid settings payload",
			Error:   err.Error(),
		})
	}

	var settings models.ClinicSettings
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("category = ?", category).First(&settings).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		merged, err := models.MergeSettingsPayload(settings.Payload, incoming)
		if err != nil {
			return err
		}

		if settings.ID == 0 {
			// First save of this category
			settings = models.ClinicSettings{Category: category, Payload: merged}
			return tx.Create(&settings).Error
		}
		settings.Payload = merged
		return tx.Model(&settings).Update("payload", merged).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save settings",
			Error:   err.Error(),
		})
	}

	return c.JSON(settings)
}
