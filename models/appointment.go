package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no-show"
)

// ValidStatus reports whether s is one of the five known statuses.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

type Appointment struct {
	gorm.Model
	Title       string            `json:"title"`
	Description string            `json:"description"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	Status      AppointmentStatus `json:"status"`
	ServiceID   uint              `json:"service_id"`
	Service     Service           `json:"service" gorm:"foreignKey:ServiceID"`
	ProviderID  uint              `json:"provider_id"`
	Provider    User              `json:"provider" gorm:"foreignKey:ProviderID"`
	CustomerID  uint              `json:"customer_id"`
	Customer    User              `json:"customer" gorm:"foreignKey:CustomerID"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// NeedsPostNotification reports whether moving to newStatus should produce a
// post-treatment notification for the given service. Only an actual change to
// completed counts; repeating the same transition must not notify twice.
func (a *Appointment) NeedsPostNotification(newStatus AppointmentStatus, service *Service) bool {
	if newStatus != StatusCompleted || a.Status == StatusCompleted {
		return false
	}
	return service != nil && service.PostPrecautions != ""
}

// UpdateStatus moves the appointment to newStatus. Any status may move to any
// other; a transition to the current status is a no-op. When the appointment
// actually becomes completed and its service carries post-treatment
// precautions, a single notification row is written in the same transaction
// as the status change.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if !ValidStatus(newStatus) {
		return fmt.Errorf("unknown appointment status %q", newStatus)
	}
	if a.Status == newStatus {
		return nil
	}

	var service Service
	if err := tx.First(&service, a.ServiceID).Error; err != nil {
		return fmt.Errorf("failed to load service: %v", err)
	}

	notify := a.NeedsPostNotification(newStatus, &service)
	a.Status = newStatus

	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(a).Update("status", newStatus).Error; err != nil {
			return err
		}
		if notify {
			notification := Notification{
				UserID:        a.CustomerID,
				AppointmentID: a.ID,
				Type:          NotificationTypePost,
				Title:         fmt.Sprintf("Aftercare: %s", service.Name),
				Message:       service.PostPrecautions,
			}
			if err := tx.Create(&notification).Error; err != nil {
				return fmt.Errorf("failed to create notification: %v", err)
			}
		}
		return nil
	})
}
