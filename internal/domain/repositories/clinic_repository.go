package repositories

import (
	"context"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

// Persisted keys of the two collections
const (
	PatientsKey     = "ayurvedic_patients"
	AppointmentsKey = "ayurvedic_appointments"
)

// ClinicRepository reads and writes the two record collections
type ClinicRepository interface {
	// LoadPatients returns the stored patients. found is false when nothing was ever saved.
	LoadPatients(ctx context.Context) (patients []*entities.Patient, found bool, err error)

	// LoadAppointments returns the stored appointments. found is false when nothing was ever saved.
	LoadAppointments(ctx context.Context) (appointments []*entities.Appointment, found bool, err error)

	// SavePatients replaces the stored patient collection
	SavePatients(ctx context.Context, patients []*entities.Patient) error

	// SaveAppointments replaces the stored appointment collection
	SaveAppointments(ctx context.Context, appointments []*entities.Appointment) error

	// SaveAll replaces both collections atomically
	SaveAll(ctx context.Context, patients []*entities.Patient, appointments []*entities.Appointment) error
}
