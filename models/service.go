package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// BookingRules is the per-service booking policy, stored as a JSONB column.
type BookingRules struct {
	MinNoticeHours   int  `json:"min_notice_hours"`
	MaxAdvanceDays   int  `json:"max_advance_days"`
	AllowSameDay     bool `json:"allow_same_day"`
	RequireApproval  bool `json:"require_approval"`
	CancellationFee  int  `json:"cancellation_fee"`
	BufferTimeMinute int  `json:"buffer_time_minute"`
}

// Value implements the driver.Valuer interface
func (r BookingRules) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (r *BookingRules) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal BookingRules: unsupported type %T", value)
	}

	return json.Unmarshal(data, r)
}

type Service struct {
	gorm.Model
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	DurationMinutes int            `json:"duration_minutes"`
	Price           float64        `json:"price"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	PostPrecautions string         `json:"post_precautions"` // sent to the customer after a completed appointment
	BookingRules    BookingRules   `json:"booking_rules" gorm:"type:jsonb"`
	WorkingHours    []WorkingHours `json:"working_hours,omitempty" gorm:"foreignKey:ServiceID"`
	ProviderID      uint           `json:"provider_id"`
	Provider        User           `json:"provider" gorm:"foreignKey:ProviderID"`
}

// Duration converts the configured minutes to a time.Duration.
func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

func (s *Service) BeforeSave(tx *gorm.DB) error {
	if s.DurationMinutes <= 0 {
		return fmt.Errorf("service duration must be positive, got %d", s.DurationMinutes)
	}
	return nil
}
