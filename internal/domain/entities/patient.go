package entities

import (
	"strings"

	apperrors "github.com/zatekoja/ayurvedaclinic/backend/pkg/errors"
)

// Gender is one of the three values a patient form offers
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists the enumerated genders in display order
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Valid reports whether g is one of the enumerated genders
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// LastVisitLayout is the display format of Patient.LastVisit
const LastVisitLayout = "01/02/2006"

// Patient is a clinic patient record. The JSON names are the persisted layout.
type Patient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    Gender `json:"gender"`
	Condition string `json:"condition"`
	History   string `json:"history"`
	LastVisit string `json:"lastVisit"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// PatientInput carries the caller-supplied fields of a new patient
type PatientInput struct {
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    Gender `json:"gender"`
	Condition string `json:"condition"`
	History   string `json:"history"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Normalize trims text fields and defaults an empty gender to Other
func (in *PatientInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Condition = strings.TrimSpace(in.Condition)
	in.History = strings.TrimSpace(in.History)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Gender == "" {
		in.Gender = GenderOther
	}
}

// Validate checks the fields the patient form requires: name, age and condition
func (in PatientInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || in.Age <= 0 || strings.TrimSpace(in.Condition) == "" {
		return apperrors.NewValidationError("Please fill in Name, Age, and Condition.")
	}
	if in.Gender != "" && !in.Gender.Valid() {
		return apperrors.NewValidationError("gender must be one of Male, Female, Other")
	}
	return nil
}

// ToPatient builds the stored record from the input
func (in PatientInput) ToPatient(id, lastVisit string) *Patient {
	return &Patient{
		ID:        id,
		Name:      in.Name,
		Age:       in.Age,
		Gender:    in.Gender,
		Condition: in.Condition,
		History:   in.History,
		LastVisit: lastVisit,
		Email:     in.Email,
		Phone:     in.Phone,
	}
}
