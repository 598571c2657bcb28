package models

import (
	"time"

	"gorm.io/gorm"
)

type TherapyStatus string

const (
	TherapyInProgress TherapyStatus = "IN_PROGRESS"
	TherapyCompleted  TherapyStatus = "COMPLETED"
)

// ActiveTherapy tracks a patient's day-by-day progress through a multi-day
// treatment plan. Progress only moves forward; there is no rollback path.
type ActiveTherapy struct {
	gorm.Model
	TherapyName string        `json:"therapy_name"`
	PatientID   uint          `json:"patient_id"`
	Patient     User          `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	ServiceID   uint          `json:"service_id"`
	Service     Service       `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	CurrentDay  int           `json:"current_day"`
	TotalDays   int           `json:"total_days"`
	Status      TherapyStatus `json:"status"`
	StartDate   time.Time     `json:"start_date"`
	Logs        []TherapyLog  `json:"logs,omitempty" gorm:"foreignKey:TherapyID"`
}

// TherapyLog is the record for one day of an active therapy. One row per
// therapy per day; concurrent edits to the same day are last-write-wins.
type TherapyLog struct {
	gorm.Model
	TherapyID uint   `json:"therapy_id" gorm:"uniqueIndex:uidx_therapy_day"`
	Day       int    `json:"day" gorm:"uniqueIndex:uidx_therapy_day"`
	PainLevel int    `json:"pain_level"`
	Notes     string `json:"notes"`
	Status    string `json:"status"` // e.g. "done", "skipped", "partial"
}

func (t *ActiveTherapy) BeforeCreate(tx *gorm.DB) error {
	if t.Status == "" {
		t.Status = TherapyInProgress
	}
	if t.CurrentDay == 0 {
		t.CurrentDay = 1
	}
	return nil
}

// CompleteDay marks the current day as done. On any day before the last the
// counter advances by one; on the final day the therapy flips to COMPLETED
// and the counter stays at TotalDays. Reports whether any state changed; an
// already-completed therapy is left untouched and reports false.
func (t *ActiveTherapy) CompleteDay() bool {
	if t.Status == TherapyCompleted {
		return false
	}
	if t.CurrentDay >= t.TotalDays {
		t.CurrentDay = t.TotalDays
		t.Status = TherapyCompleted
		return true
	}
	t.CurrentDay++
	return true
}
