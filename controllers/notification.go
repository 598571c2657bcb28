package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicdesk/clinic-admin-api/db"
	"github.com/clinicdesk/clinic-admin-api/models"
	"github.com/clinicdesk/clinic-admin-api/utils"
)

// GetMyNotifications lists notifications addressed to the logged-in user,
// newest first.
func GetMyNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	query := db.DB.Where("user_id = ?", userID)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at desc").Find(&notifications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch notifications",
			Error:   err.Error(),
		})
	}
	return c.JSON(notifications)
}

// MarkNotificationRead flags one of the user's notifications as read
func MarkNotificationRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")
	var notification models.Notification
	if err := db.DB.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Notification not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update notification",
			Error:   err.Error(),
		})
	}
	return c.JSON(notification)
}
