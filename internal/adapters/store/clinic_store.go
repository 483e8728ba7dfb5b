package store

import (
	"context"
	"encoding/json"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/providers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/ayurvedaclinic/backend/pkg/errors"
)

// ClinicStore implements ClinicRepository by JSON-encoding each collection under its own key
type ClinicStore struct {
	kv providers.KeyValueStore
}

// NewClinicStore creates a clinic store on top of any key-value backend
func NewClinicStore(kv providers.KeyValueStore) repositories.ClinicRepository {
	return &ClinicStore{kv: kv}
}

// LoadPatients decodes the patients collection
func (s *ClinicStore) LoadPatients(ctx context.Context) ([]*entities.Patient, bool, error) {
	var patients []*entities.Patient
	found, err := s.load(ctx, repositories.PatientsKey, &patients)
	return patients, found, err
}

// LoadAppointments decodes the appointments collection
func (s *ClinicStore) LoadAppointments(ctx context.Context) ([]*entities.Appointment, bool, error) {
	var appointments []*entities.Appointment
	found, err := s.load(ctx, repositories.AppointmentsKey, &appointments)
	return appointments, found, err
}

// SavePatients encodes and stores the patients collection
func (s *ClinicStore) SavePatients(ctx context.Context, patients []*entities.Patient) error {
	data, err := encode(nonNil(patients))
	if err != nil {
		return err
	}
	return s.kv.Save(ctx, repositories.PatientsKey, data)
}

// SaveAppointments encodes and stores the appointments collection
func (s *ClinicStore) SaveAppointments(ctx context.Context, appointments []*entities.Appointment) error {
	data, err := encode(nonNil(appointments))
	if err != nil {
		return err
	}
	return s.kv.Save(ctx, repositories.AppointmentsKey, data)
}

// SaveAll stores both collections in one batch
func (s *ClinicStore) SaveAll(ctx context.Context, patients []*entities.Patient, appointments []*entities.Appointment) error {
	patientData, err := encode(nonNil(patients))
	if err != nil {
		return err
	}
	appointmentData, err := encode(nonNil(appointments))
	if err != nil {
		return err
	}
	return s.kv.SaveBatch(ctx, map[string][]byte{
		repositories.PatientsKey:     patientData,
		repositories.AppointmentsKey: appointmentData,
	})
}

func (s *ClinicStore) load(ctx context.Context, key string, out interface{}) (bool, error) {
	data, found, err := s.kv.Load(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, apperrors.NewInternalError("failed to decode "+key, err)
	}
	return true, nil
}

func encode(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode collection", err)
	}
	return data, nil
}

// nonNil keeps an empty collection encoded as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
