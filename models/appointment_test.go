package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []AppointmentStatus{
		StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow,
	} {
		assert.True(t, ValidStatus(status), "%s should be valid", status)
	}

	assert.False(t, ValidStatus("canceled")) // American spelling is not a status
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("done"))
}

func TestNeedsPostNotification(t *testing.T) {
	withPrecautions := &Service{PostPrecautions: "Ice the area for 20 minutes."}
	withoutPrecautions := &Service{}

	t.Run("completion with precautions notifies", func(t *testing.T) {
		appt := Appointment{Status: StatusConfirmed}
		assert.True(t, appt.NeedsPostNotification(StatusCompleted, withPrecautions))
	})

	t.Run("completion without precautions does not", func(t *testing.T) {
		appt := Appointment{Status: StatusConfirmed}
		assert.False(t, appt.NeedsPostNotification(StatusCompleted, withoutPrecautions))
	})

	t.Run("repeating completed does not notify again", func(t *testing.T) {
		appt := Appointment{Status: StatusCompleted}
		assert.False(t, appt.NeedsPostNotification(StatusCompleted, withPrecautions))
	})

	t.Run("non-completion targets never notify", func(t *testing.T) {
		appt := Appointment{Status: StatusPending}
		for _, status := range []AppointmentStatus{
			StatusConfirmed, StatusCancelled, StatusNoShow,
		} {
			assert.False(t, appt.NeedsPostNotification(status, withPrecautions))
		}
	})

	t.Run("nil service does not notify", func(t *testing.T) {
		appt := Appointment{Status: StatusConfirmed}
		assert.False(t, appt.NeedsPostNotification(StatusCompleted, nil))
	})
}
