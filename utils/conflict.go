package utils

import (
	"fmt"
	"time"

	"github.com/clinicdesk/clinic-admin-api/models"
	"gorm.io/gorm"
)

// DayConflict is one day's answer from the conflict checker.
type DayConflict struct {
	Date     string `json:"date"`
	Conflict bool   `json:"conflict"`
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ScanDayConflicts walks the requested days in date order and flags each one
// on which a non-cancelled appointment starts at exactly the same calendar
// date and minute. Matching is exact to the minute: an appointment whose
// duration would overlap a different start minute is not flagged.
// Appointment times are compared in startDate's zone; rows read back from
// the DB may carry the session zone rather than clinic time.
func ScanDayConflicts(startDate time.Time, days int, startTime string, existing []models.Appointment) []DayConflict {
	results := make([]DayConflict, 0, days)
	for i := 0; i < days; i++ {
		day := startDate.AddDate(0, 0, i)
		date := day.Format(dateLayout)

		conflict := false
		for _, a := range existing {
			if a.Status == models.StatusCancelled {
				continue
			}
			st := a.StartTime.In(startDate.Location())
			if st.Format(dateLayout) == date && st.Format(timeLayout) == startTime {
				conflict = true
				break
			}
		}
		results = append(results, DayConflict{Date: date, Conflict: conflict})
	}
	return results
}

// CheckConflicts fetches the appointments in the requested window and scans
// them day by day. The query is scoped to the window and to non-cancelled
// statuses; the scan itself is read-only and any DB error propagates to the
// caller. The window is anchored to startDate's calendar date in the clinic
// timezone regardless of the zone the caller parsed it in.
func CheckConflicts(database *gorm.DB, startDate time.Time, days int, startTime string) ([]DayConflict, error) {
	if days <= 0 {
		return nil, fmt.Errorf("day count must be positive, got %d", days)
	}
	if _, err := time.Parse(timeLayout, startTime); err != nil {
		return nil, fmt.Errorf("invalid start time %q, want HH:MM", startTime)
	}

	windowStart := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, ClinicLocation())
	windowEnd := windowStart.AddDate(0, 0, days)

	var existing []models.Appointment
	if err := database.
		Where("start_time >= ? AND start_time < ?", windowStart, windowEnd).
		Where("status <> ?", models.StatusCancelled).
		Find(&existing).Error; err != nil {
		return nil, err
	}

	return ScanDayConflicts(windowStart, days, startTime, existing), nil
}

// PlanLockKeys returns one advisory lock key per requested calendar day,
// ascending. Keys depend only on the date, not the zone's offset, so two
// plan transactions over overlapping windows contend on the shared days.
func PlanLockKeys(startDate time.Time, days int) []int64 {
	keys := make([]int64, 0, days)
	for i := 0; i < days; i++ {
		d := startDate.AddDate(0, 0, i)
		epochDay := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400
		keys = append(keys, epochDay)
	}
	return keys
}

// HasConflict reports whether any day in the scan came back flagged.
func HasConflict(results []DayConflict) bool {
	for _, r := range results {
		if r.Conflict {
			return true
		}
	}
	return false
}
