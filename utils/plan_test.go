package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-admin-api/models"
)

func TestBuildTreatmentPlan(t *testing.T) {
	service := &models.Service{
		Name:            "Physiotherapy",
		DurationMinutes: 45,
		ProviderID:      7,
	}
	service.ID = 3

	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	plan := BuildTreatmentPlan(12, service, "Knee rehab", start, 5)

	require.Len(t, plan, 5)
	for i, appt := range plan {
		assert.Equal(t, "Knee rehab", appt.Title)
		assert.Equal(t, uint(12), appt.CustomerID)
		assert.Equal(t, uint(3), appt.ServiceID)
		assert.Equal(t, uint(7), appt.ProviderID)
		assert.Equal(t, models.StatusConfirmed, appt.Status)

		// One appointment per consecutive day, same time-of-day
		wantStart := start.AddDate(0, 0, i)
		assert.True(t, appt.StartTime.Equal(wantStart), "day %d start", i)
		assert.Equal(t, 45*time.Minute, appt.EndTime.Sub(appt.StartTime), "day %d duration", i)
	}

	// Consecutive starts are exactly 24 hours apart
	for i := 1; i < len(plan); i++ {
		assert.Equal(t, 24*time.Hour, plan[i].StartTime.Sub(plan[i-1].StartTime))
	}
}

func TestBuildTreatmentPlanSingleDay(t *testing.T) {
	service := &models.Service{DurationMinutes: 30}
	service.ID = 1

	start := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	plan := BuildTreatmentPlan(1, service, "One-off", start, 1)

	require.Len(t, plan, 1)
	assert.True(t, plan[0].EndTime.Equal(start.Add(30*time.Minute)))
}
