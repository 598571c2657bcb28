package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompleteDayAdvances(t *testing.T) {
	therapy := ActiveTherapy{
		CurrentDay: 2,
		TotalDays:  10,
		Status:     TherapyInProgress,
	}

	assert.True(t, therapy.CompleteDay())
	assert.Equal(t, 3, therapy.CurrentDay)
	assert.Equal(t, TherapyInProgress, therapy.Status)
}

func TestCompleteDayFinalDay(t *testing.T) {
	therapy := ActiveTherapy{
		CurrentDay: 10,
		TotalDays:  10,
		Status:     TherapyInProgress,
	}

	assert.True(t, therapy.CompleteDay())

	// The counter never moves past the plan length
	assert.Equal(t, 10, therapy.CurrentDay)
	assert.Equal(t, TherapyCompleted, therapy.Status)
}

func TestCompleteDayAlreadyCompleted(t *testing.T) {
	therapy := ActiveTherapy{
		CurrentDay: 10,
		TotalDays:  10,
		Status:     TherapyCompleted,
	}

	// No state change is reported, so callers skip the day-log write and
	// whatever status an editor set on the final day survives.
	assert.False(t, therapy.CompleteDay())
	assert.Equal(t, 10, therapy.CurrentDay)
	assert.Equal(t, TherapyCompleted, therapy.Status)
}

func TestCompleteDayCapsOverrunCounter(t *testing.T) {
	// A counter that somehow passed the total snaps back to it.
	therapy := ActiveTherapy{
		CurrentDay: 12,
		TotalDays:  10,
		Status:     TherapyInProgress,
	}

	assert.True(t, therapy.CompleteDay())
	assert.Equal(t, 10, therapy.CurrentDay)
	assert.Equal(t, TherapyCompleted, therapy.Status)
}

func TestCompleteDaySingleDayPlan(t *testing.T) {
	therapy := ActiveTherapy{
		CurrentDay: 1,
		TotalDays:  1,
		Status:     TherapyInProgress,
	}

	assert.True(t, therapy.CompleteDay())
	assert.Equal(t, 1, therapy.CurrentDay)
	assert.Equal(t, TherapyCompleted, therapy.Status)
}
