package models

import (
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypePost     NotificationType = "post"
	NotificationTypeReminder NotificationType = "reminder"
	NotificationTypeSystem   NotificationType = "system"
)

type Notification struct {
	gorm.Model
	UserID        uint             `json:"user_id"`
	User          User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	AppointmentID uint             `json:"appointment_id"`
	Type          NotificationType `json:"type"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	IsRead        bool             `json:"is_read" gorm:"default:false"`
}
