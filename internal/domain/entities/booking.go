package entities

import (
	"strings"
	"time"

	apperrors "github.com/zatekoja/ayurvedaclinic/backend/pkg/errors"
)

// Fixed texts written by the online booking flow
const (
	OnlineBookingNotes   = "First Consultation (Online Booking)"
	OnlineBookingHistory = "First visit from online booking."
)

// BookingRequest is the online booking form
type BookingRequest struct {
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    Gender `json:"gender"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Condition string `json:"condition"`
	Date      string `json:"date"`
}

// Validate checks the required booking fields. Dates before today are rejected.
func (r BookingRequest) Validate(today time.Time) error {
	if strings.TrimSpace(r.Name) == "" || r.Age <= 0 || strings.TrimSpace(r.Email) == "" ||
		strings.TrimSpace(r.Condition) == "" || strings.TrimSpace(r.Date) == "" {
		return apperrors.NewValidationError("Please fill in all required fields.")
	}
	if r.Gender != "" && !r.Gender.Valid() {
		return apperrors.NewValidationError("gender must be one of Male, Female, Other")
	}
	date, err := ParseDateKey(r.Date)
	if err != nil {
		return apperrors.NewValidationError("date must be formatted YYYY-MM-DD")
	}
	if DateKey(date) < DateKey(today) {
		return apperrors.NewValidationError("appointment date cannot be in the past")
	}
	return nil
}

// PatientInput converts the form into a new patient with the online booking history
func (r BookingRequest) PatientInput() PatientInput {
	in := PatientInput{
		Name:      r.Name,
		Age:       r.Age,
		Gender:    r.Gender,
		Condition: r.Condition,
		History:   OnlineBookingHistory,
		Email:     r.Email,
		Phone:     r.Phone,
	}
	in.Normalize()
	return in
}

// BookingResult is what a completed booking created
type BookingResult struct {
	Patient     *Patient     `json:"patient"`
	Appointment *Appointment `json:"appointment"`
}
