package utils

import (
	"time"

	"github.com/clinicdesk/clinic-admin-api/models"
)

// BuildTreatmentPlan expands a start instant into one appointment per
// consecutive calendar day, each at the same time-of-day and each lasting
// the service's configured duration.
func BuildTreatmentPlan(customerID uint, service *models.Service, title string, start time.Time, days int) []models.Appointment {
	plan := make([]models.Appointment, 0, days)
	for i := 0; i < days; i++ {
		dayStart := start.AddDate(0, 0, i)
		plan = append(plan, models.Appointment{
			Title:      title,
			StartTime:  dayStart,
			EndTime:    dayStart.Add(service.Duration()),
			Status:     models.StatusConfirmed,
			ServiceID:  service.ID,
			ProviderID: service.ProviderID,
			CustomerID: customerID,
		})
	}
	return plan
}
