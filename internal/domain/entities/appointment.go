package entities

import (
	"strings"
	"time"

	apperrors "github.com/zatekoja/ayurvedaclinic/backend/pkg/errors"
)

// DateKeyLayout is the calendar-day key format used by appointments
const DateKeyLayout = "2006-01-02"

// Appointment represents a scheduled consultation. Date is a YYYY-MM-DD key with no time of day.
type Appointment struct {
	ID          string `json:"id"`
	PatientID   string `json:"patientId"`
	PatientName string `json:"patientName"`
	Date        string `json:"date"`
	Notes       string `json:"notes"`
}

// AppointmentInput carries the caller-supplied fields of a new appointment
type AppointmentInput struct {
	PatientID   string `json:"patientId"`
	PatientName string `json:"patientName,omitempty"`
	Date        string `json:"date"`
	Notes       string `json:"notes"`
}

// Validate checks that a patient and a well-formed date were supplied
func (in AppointmentInput) Validate() error {
	if strings.TrimSpace(in.PatientID) == "" || strings.TrimSpace(in.Date) == "" {
		return apperrors.NewValidationError("Please select a date and a patient.")
	}
	if _, err := ParseDateKey(in.Date); err != nil {
		return apperrors.NewValidationError("date must be formatted YYYY-MM-DD")
	}
	return nil
}

// DateKey returns the calendar-day key of t in t's location
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key as midnight UTC
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateKeyLayout, strings.TrimSpace(key))
}
