package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

type SettingsCategory string

const (
	SettingsGeneral       SettingsCategory = "general"
	SettingsBooking       SettingsCategory = "booking"
	SettingsNotifications SettingsCategory = "notifications"
	SettingsSecurity      SettingsCategory = "security"
	SettingsSystem        SettingsCategory = "system"
)

// ValidSettingsCategory reports whether c names one of the five categories.
func ValidSettingsCategory(c SettingsCategory) bool {
	switch c {
	case SettingsGeneral, SettingsBooking, SettingsNotifications, SettingsSecurity, SettingsSystem:
		return true
	}
	return false
}

// GeneralSettings is the payload schema for the "general" category.
type GeneralSettings struct {
	ClinicName string `json:"clinic_name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	TimeZone   string `json:"time_zone"`
	Currency   string `json:"currency"`
}

// BookingSettings is the payload schema for the "booking" category.
type BookingSettings struct {
	SlotDurationMinutes     int  `json:"slot_duration_minutes"`
	BookingWindowDays       int  `json:"booking_window_days"`
	AutoConfirm             bool `json:"auto_confirm"`
	AllowOnlineBooking      bool `json:"allow_online_booking"`
	CancellationNoticeHours int  `json:"cancellation_notice_hours"`
}

// NotificationSettings is the payload schema for the "notifications" category.
type NotificationSettings struct {
	EmailEnabled        bool   `json:"email_enabled"`
	SMSEnabled          bool   `json:"sms_enabled"`
	ReminderHoursBefore int    `json:"reminder_hours_before"`
	SenderEmail         string `json:"sender_email"`
}

// SecuritySettings is the payload schema for the "security" category.
type SecuritySettings struct {
	SessionTimeoutMinutes int  `json:"session_timeout_minutes"`
	PasswordMinLength     int  `json:"password_min_length"`
	RequireTwoFactor      bool `json:"require_two_factor"`
}

// SystemSettings is the payload schema for the "system" category.
type SystemSettings struct {
	MaintenanceMode   bool `json:"maintenance_mode"`
	DataRetentionDays int  `json:"data_retention_days"`
	BackupEnabled     bool `json:"backup_enabled"`
}

// SettingsPayload is a raw JSON document stored in a JSONB column.
type SettingsPayload json.RawMessage

// Value implements the driver.Valuer interface
func (p SettingsPayload) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "{}", nil
	}
	return string(p), nil
}

// Scan implements the sql.Scanner interface
func (p *SettingsPayload) Scan(value interface{}) error {
	if value == nil {
		*p = SettingsPayload("{}")
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*p = SettingsPayload(bytes.Clone(v))
	case string:
		*p = SettingsPayload(v)
	default:
		return fmt.Errorf("failed to unmarshal SettingsPayload: unsupported type %T", value)
	}
	return nil
}

func (p SettingsPayload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("{}"), nil
	}
	return []byte(p), nil
}

func (p *SettingsPayload) UnmarshalJSON(data []byte) error {
	*p = SettingsPayload(bytes.Clone(data))
	return nil
}

// ClinicSettings holds one settings category per row. Rows are created
// lazily on first save and merged, never overwritten wholesale.
type ClinicSettings struct {
	gorm.Model
	Category SettingsCategory `json:"category" gorm:"unique"`
	Payload  SettingsPayload  `json:"payload" gorm:"type:jsonb"`
}

// MergeSettingsPayload overlays incoming top-level keys onto existing,
// keeping any stored keys the caller did not send. Both inputs must be JSON
// objects; empty inputs are treated as empty objects.
func MergeSettingsPayload(existing, incoming SettingsPayload) (SettingsPayload, error) {
	merged := map[string]interface{}{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &merged); err != nil {
			return nil, fmt.Errorf("stored settings are not a JSON object: %v", err)
		}
	}
	update := map[string]interface{}{}
	if len(incoming) > 0 {
		if err := json.Unmarshal(incoming, &update); err != nil {
			return nil, fmt.Errorf("settings update is not a JSON object: %v", err)
		}
	}
	for k, v := range update {
		merged[k] = v
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	return SettingsPayload(out), nil
}

// ValidateSettingsPayload decodes payload against the typed schema for the
// category, rejecting unknown fields and values below the configured
// minimums.
func ValidateSettingsPayload(category SettingsCategory, payload SettingsPayload) error {
	if !ValidSettingsCategory(category) {
		return fmt.Errorf("unknown settings category %q", category)
	}

	decode := func(target interface{}) error {
		dec := json.NewDecoder(bytes.NewReader(payload))
		dec.DisallowUnknownFields()
		return dec.Decode(target)
	}

	switch category {
	case SettingsGeneral:
		var s GeneralSettings
		return decode(&s)
	case SettingsBooking:
		// Pointer fields distinguish "not sent" from an explicit zero.
		var s struct {
			SlotDurationMinutes     *int  `json:"slot_duration_minutes"`
			BookingWindowDays       *int  `json:"booking_window_days"`
			AutoConfirm             *bool `json:"auto_confirm"`
			AllowOnlineBooking      *bool `json:"allow_online_booking"`
			CancellationNoticeHours *int  `json:"cancellation_notice_hours"`
		}
		if err := decode(&s); err != nil {
			return err
		}
		if s.SlotDurationMinutes != nil && *s.SlotDurationMinutes < 5 {
			return fmt.Errorf("slot duration must be at least 5 minutes")
		}
		if s.BookingWindowDays != nil && *s.BookingWindowDays < 1 {
			return fmt.Errorf("booking window must be at least 1 day")
		}
	case SettingsNotifications:
		var s NotificationSettings
		return decode(&s)
	case SettingsSecurity:
		var s SecuritySettings
		return decode(&s)
	case SettingsSystem:
		var s SystemSettings
		return decode(&s)
	}
	return nil
}
