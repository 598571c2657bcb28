package utils

import (
	"os"
	"time"
)

// ClinicLocation returns the clinic's configured timezone. Falls back to UTC
// when CLINIC_TIMEZONE is unset or unknown.
func ClinicLocation() *time.Location {
	name := os.Getenv("CLINIC_TIMEZONE")
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ToClinicTime converts t to the clinic's timezone.
func ToClinicTime(t time.Time) time.Time {
	return t.In(ClinicLocation())
}
