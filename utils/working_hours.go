package utils

import (
	"fmt"
	"time"

	"github.com/clinicdesk/clinic-admin-api/db"
	"github.com/clinicdesk/clinic-admin-api/models"
)

// CheckWorkingDayAndHours reports whether the appointment start falls inside
// the service's working days and hours, break periods excluded. A service
// with no configured hours accepts any time.
func CheckWorkingDayAndHours(serviceID uint, appointmentStart time.Time) (bool, error) {
	var serviceHours []models.WorkingHours
	if err := db.DB.Where("service_id = ?", serviceID).Find(&serviceHours).Error; err != nil {
		return false, fmt.Errorf("service working hours not found")
	}
	if len(serviceHours) == 0 {
		return true, nil
	}

	appointmentDay := int(appointmentStart.Weekday())

	var hoursForTheDay *models.WorkingHours
	for i, wh := range serviceHours {
		if int(wh.DayOfWeek) == appointmentDay && wh.IsWorkDay {
			hoursForTheDay = &serviceHours[i]
			break
		}
	}
	if hoursForTheDay == nil {
		return false, nil // Appointment is outside working days
	}

	layout := "15:04"
	startTime, err := time.Parse(layout, hoursForTheDay.StartTime)
	if err != nil {
		return false, fmt.Errorf("invalid start time format")
	}
	endTime, err := time.Parse(layout, hoursForTheDay.EndTime)
	if err != nil {
		return false, fmt.Errorf("invalid end time format")
	}

	// Compare only the time-of-day portion
	appointmentClock, err := time.Parse(layout, appointmentStart.Format(layout))
	if err != nil {
		return false, fmt.Errorf("invalid appointment time")
	}
	if appointmentClock.Before(startTime) || appointmentClock.After(endTime) {
		return false, nil // Appointment is outside working hours
	}

	if hoursForTheDay.BreakStart != nil && hoursForTheDay.BreakEnd != nil {
		breakStart, err := time.Parse(layout, *hoursForTheDay.BreakStart)
		if err != nil {
			return false, fmt.Errorf("invalid break start time format")
		}
		breakEnd, err := time.Parse(layout, *hoursForTheDay.BreakEnd)
		if err != nil {
			return false, fmt.Errorf("invalid break end time format")
		}
		if appointmentClock.After(breakStart) && appointmentClock.Before(breakEnd) {
			return false, nil // Appointment is within break time
		}
	}

	return true, nil
}
