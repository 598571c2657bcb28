package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-admin-api/models"
)

func appointmentAt(t *testing.T, datetime string, status models.AppointmentStatus) models.Appointment {
	t.Helper()
	start, err := time.Parse("2006-01-02 15:04", datetime)
	require.NoError(t, err)
	return models.Appointment{
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    status,
	}
}

func TestScanDayConflictsThreeDayScenario(t *testing.T) {
	// One confirmed appointment on the middle day at the requested time.
	existing := []models.Appointment{
		appointmentAt(t, "2024-06-02 09:00", models.StatusConfirmed),
	}

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	results := ScanDayConflicts(start, 3, "09:00", existing)

	require.Len(t, results, 3)
	assert.Equal(t, []DayConflict{
		{Date: "2024-06-01", Conflict: false},
		{Date: "2024-06-02", Conflict: true},
		{Date: "2024-06-03", Conflict: false},
	}, results)
	assert.True(t, HasConflict(results))
}

func TestScanDayConflictsIgnoresCancelled(t *testing.T) {
	existing := []models.Appointment{
		appointmentAt(t, "2024-06-01 09:00", models.StatusCancelled),
	}

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	results := ScanDayConflicts(start, 1, "09:00", existing)

	require.Len(t, results, 1)
	assert.False(t, results[0].Conflict)
	assert.False(t, HasConflict(results))
}

func TestScanDayConflictsExactMinuteOnly(t *testing.T) {
	// An appointment one minute off the requested time is not flagged,
	// even though its duration would overlap.
	existing := []models.Appointment{
		appointmentAt(t, "2024-06-01 09:01", models.StatusConfirmed),
		appointmentAt(t, "2024-06-01 08:45", models.StatusConfirmed),
	}

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	results := ScanDayConflicts(start, 1, "09:00", existing)

	require.Len(t, results, 1)
	assert.False(t, results[0].Conflict)
}

func TestScanDayConflictsAllStatusesButCancelledCount(t *testing.T) {
	for _, status := range []models.AppointmentStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusCompleted,
		models.StatusNoShow,
	} {
		existing := []models.Appointment{appointmentAt(t, "2024-06-01 10:00", status)}
		start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		results := ScanDayConflicts(start, 1, "10:00", existing)
		require.Len(t, results, 1)
		assert.True(t, results[0].Conflict, "status %s should conflict", status)
	}
}

func TestScanDayConflictsNormalizesAppointmentZone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// A 09:00 clinic-time booking read back from the DB in UTC.
	existing := []models.Appointment{{
		StartTime: time.Date(2024, 6, 2, 7, 0, 0, 0, time.UTC),
		Status:    models.StatusConfirmed,
	}}

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, berlin)
	results := ScanDayConflicts(start, 3, "09:00", existing)

	require.Len(t, results, 3)
	assert.False(t, results[0].Conflict)
	assert.True(t, results[1].Conflict)
	assert.False(t, results[2].Conflict)
}

func TestScanDayConflictsZoneShiftAcrossMidnight(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 22:30 UTC on May 31 is 00:30 on June 1 clinic time. The row must land
	// on the clinic calendar day, not the UTC one.
	existing := []models.Appointment{{
		StartTime: time.Date(2024, 5, 31, 22, 30, 0, 0, time.UTC),
		Status:    models.StatusConfirmed,
	}}

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, berlin)
	results := ScanDayConflicts(start, 1, "00:30", existing)

	require.Len(t, results, 1)
	assert.Equal(t, "2024-06-01", results[0].Date)
	assert.True(t, results[0].Conflict)
}

func TestPlanLockKeysOnePerDayAscending(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	keys := PlanLockKeys(start, 3)

	require.Len(t, keys, 3)
	assert.Equal(t, keys[0]+1, keys[1])
	assert.Equal(t, keys[0]+2, keys[2])
}

func TestPlanLockKeysSameDateAnyZone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	utcKeys := PlanLockKeys(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 2)
	berlinKeys := PlanLockKeys(time.Date(2024, 6, 1, 9, 0, 0, 0, berlin), 2)

	assert.Equal(t, utcKeys, berlinKeys)
}

func TestPlanLockKeysOverlappingWindowsShareDays(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	first := PlanLockKeys(start, 3)
	second := PlanLockKeys(start.AddDate(0, 0, 2), 3)

	// The shared calendar day yields the same key in both windows.
	assert.Equal(t, first[2], second[0])
}

func TestScanDayConflictsDateOrder(t *testing.T) {
	start := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)
	results := ScanDayConflicts(start, 4, "09:00", nil)

	// Crosses the leap-day boundary in order
	require.Len(t, results, 4)
	assert.Equal(t, "2024-02-27", results[0].Date)
	assert.Equal(t, "2024-02-28", results[1].Date)
	assert.Equal(t, "2024-02-29", results[2].Date)
	assert.Equal(t, "2024-03-01", results[3].Date)
}
