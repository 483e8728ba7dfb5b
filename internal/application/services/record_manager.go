package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/providers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/repositories"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/ayurvedaclinic/backend/pkg/errors"
)

// RecordManager owns the patient and appointment collections.
//
// Every mutation builds the next collections aside, persists them through the
// repository, and only then swaps them in. A failed save leaves memory untouched.
// Patients stay sorted by name and appointments by date after every mutation.
type RecordManager struct {
	repo    repositories.ClinicRepository
	events  providers.EventBus
	metrics *observability.Metrics
	now     func() time.Time
	loc     *time.Location
	newID   func() string
	seed    bool

	mu           sync.RWMutex
	patients     []*entities.Patient
	appointments []*entities.Appointment
	collator     *collate.Collator
}

// RecordManagerOption configures a RecordManager
type RecordManagerOption func(*RecordManager)

// WithEventBus publishes a RecordEvent after each mutation
func WithEventBus(bus providers.EventBus) RecordManagerOption {
	return func(m *RecordManager) { m.events = bus }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) RecordManagerOption {
	return func(m *RecordManager) { m.now = now }
}

// WithLocation sets the clinic timezone used for "today"
func WithLocation(loc *time.Location) RecordManagerOption {
	return func(m *RecordManager) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// WithIDGenerator replaces the UUIDv7 generator
func WithIDGenerator(gen func() string) RecordManagerOption {
	return func(m *RecordManager) { m.newID = gen }
}

// WithStoreMetrics records persistence timings
func WithStoreMetrics(metrics *observability.Metrics) RecordManagerOption {
	return func(m *RecordManager) { m.metrics = metrics }
}

// WithSeed controls whether absent collections are seeded with sample data on Load
func WithSeed(seed bool) RecordManagerOption {
	return func(m *RecordManager) { m.seed = seed }
}

// NewRecordManager creates an empty record manager. Call Load before serving.
func NewRecordManager(repo repositories.ClinicRepository, opts ...RecordManagerOption) *RecordManager {
	m := &RecordManager{
		repo:         repo,
		now:          time.Now,
		loc:          time.Local,
		newID:        newTimeOrderedID,
		seed:         true,
		patients:     []*entities.Patient{},
		appointments: []*entities.Appointment{},
		collator:     collate.New(language.English),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// newTimeOrderedID returns a UUIDv7, which embeds its creation time
func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Today returns the current time in the clinic timezone
func (m *RecordManager) Today() time.Time {
	return m.now().In(m.loc)
}

// Load reads both collections. Absent keys are seeded with sample data and written back;
// seeded appointments only reference patients that were loaded.
func (m *RecordManager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	logger := observability.LoggerFromContext(ctx)

	var patients []*entities.Patient
	var found bool
	err := m.timed(ctx, "load_patients", func() error {
		var err error
		patients, found, err = m.repo.LoadPatients(ctx)
		return err
	})
	if err != nil {
		return apperrors.NewInternalError("failed to load patients", err)
	}
	if !found && m.seed {
		patients = SamplePatients()
		m.sortPatients(patients)
		if err := m.timed(ctx, "save_patients", func() error { return m.repo.SavePatients(ctx, patients) }); err != nil {
			return apperrors.NewInternalError("failed to seed patients", err)
		}
		logger.Info().Int("count", len(patients)).Msg("seeded sample patients")
	}

	var appointments []*entities.Appointment
	err = m.timed(ctx, "load_appointments", func() error {
		var err error
		appointments, found, err = m.repo.LoadAppointments(ctx)
		return err
	})
	if err != nil {
		return apperrors.NewInternalError("failed to load appointments", err)
	}
	if !found && m.seed {
		appointments = seedAppointmentsFor(m.Today(), patients)
		if err := m.timed(ctx, "save_appointments", func() error { return m.repo.SaveAppointments(ctx, appointments) }); err != nil {
			return apperrors.NewInternalError("failed to seed appointments", err)
		}
		logger.Info().Int("count", len(appointments)).Msg("seeded sample appointments")
	}

	m.patients = nonNilPatients(patients)
	m.appointments = nonNilAppointments(appointments)
	logger.Info().Int("patients", len(m.patients)).Int("appointments", len(m.appointments)).Msg("clinic records loaded")
	return nil
}

// Patients returns a copy of the patient collection in name order
func (m *RecordManager) Patients() []*entities.Patient {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clonePatients(m.patients)
}

// Appointments returns a copy of the appointment collection in date order
func (m *RecordManager) Appointments() []*entities.Appointment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneAppointments(m.appointments)
}

// Patient returns the patient with the given id
func (m *RecordManager) Patient(id string) (*entities.Patient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if p := m.findPatient(id); p != nil {
		clone := *p
		return &clone, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient %s not found", id))
}

// SearchPatients filters patients by a case-insensitive name substring. An empty term matches all.
func (m *RecordManager) SearchPatients(term string) []*entities.Patient {
	term = strings.ToLower(strings.TrimSpace(term))

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*entities.Patient, 0, len(m.patients))
	for _, p := range m.patients {
		if term == "" || strings.Contains(strings.ToLower(p.Name), term) {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out
}

// AddPatient creates a patient with a fresh id and today's visit date
func (m *RecordManager) AddPatient(ctx context.Context, in entities.PatientInput) (*entities.Patient, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	patient := m.newPatient(in)
	next := append(clonePatientSlice(m.patients), patient)
	m.sortPatients(next)

	if err := m.timed(ctx, "save_patients", func() error { return m.repo.SavePatients(ctx, next) }); err != nil {
		m.mu.Unlock()
		return nil, apperrors.NewInternalError("failed to save patients", err)
	}
	m.patients = next
	m.mu.Unlock()

	observability.RecordMutation("patient", "add")
	observability.LoggerFromContext(ctx).Debug().Str("patient_id", patient.ID).Msg("patient added")
	m.publish(ctx, entities.NewRecordEvent(entities.RecordEventPatientAdded, patient.ID))

	clone := *patient
	return &clone, nil
}

// RemovePatient deletes a patient and every appointment referencing it.
// Removing an unknown id is a no-op.
func (m *RecordManager) RemovePatient(ctx context.Context, id string) error {
	m.mu.Lock()
	if m.findPatient(id) == nil {
		m.mu.Unlock()
		return nil
	}

	nextPatients := make([]*entities.Patient, 0, len(m.patients)-1)
	for _, p := range m.patients {
		if p.ID != id {
			nextPatients = append(nextPatients, p)
		}
	}

	var removed []string
	nextAppointments := make([]*entities.Appointment, 0, len(m.appointments))
	for _, a := range m.appointments {
		if a.PatientID == id {
			removed = append(removed, a.ID)
			continue
		}
		nextAppointments = append(nextAppointments, a)
	}

	if err := m.timed(ctx, "save_all", func() error { return m.repo.SaveAll(ctx, nextPatients, nextAppointments) }); err != nil {
		m.mu.Unlock()
		return apperrors.NewInternalError("failed to save records", err)
	}
	m.patients = nextPatients
	m.appointments = nextAppointments
	m.mu.Unlock()

	observability.RecordMutation("patient", "remove")
	observability.LoggerFromContext(ctx).Debug().Str("patient_id", id).Int("cascaded_appointments", len(removed)).Msg("patient removed")
	m.publish(ctx, entities.NewRecordEvent(entities.RecordEventPatientRemoved, id, removed...))
	return nil
}

// AddAppointment schedules an appointment. Overlapping appointments are allowed.
// An empty patient name is filled from the referenced patient, which must exist.
func (m *RecordManager) AddAppointment(ctx context.Context, in entities.AppointmentInput) (*entities.Appointment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	patient := m.findPatient(in.PatientID)
	if patient == nil {
		m.mu.Unlock()
		return nil, apperrors.NewValidationError(fmt.Sprintf("patient %s does not exist", in.PatientID))
	}

	appointment := m.newAppointment(patient, in)
	next := append(cloneAppointmentSlice(m.appointments), appointment)
	sortAppointments(next)

	if err := m.timed(ctx, "save_appointments", func() error { return m.repo.SaveAppointments(ctx, next) }); err != nil {
		m.mu.Unlock()
		return nil, apperrors.NewInternalError("failed to save appointments", err)
	}
	m.appointments = next
	m.mu.Unlock()

	observability.RecordMutation("appointment", "add")
	observability.LoggerFromContext(ctx).Debug().Str("appointment_id", appointment.ID).Str("date", appointment.Date).Msg("appointment added")
	m.publish(ctx, entities.NewRecordEvent(entities.RecordEventAppointmentAdded, appointment.ID, appointment.PatientID))

	clone := *appointment
	return &clone, nil
}

// RemoveAppointment deletes an appointment. Removing an unknown id is a no-op.
func (m *RecordManager) RemoveAppointment(ctx context.Context, id string) error {
	m.mu.Lock()
	next := make([]*entities.Appointment, 0, len(m.appointments))
	for _, a := range m.appointments {
		if a.ID != id {
			next = append(next, a)
		}
	}
	if len(next) == len(m.appointments) {
		m.mu.Unlock()
		return nil
	}

	if err := m.timed(ctx, "save_appointments", func() error { return m.repo.SaveAppointments(ctx, next) }); err != nil {
		m.mu.Unlock()
		return apperrors.NewInternalError("failed to save appointments", err)
	}
	m.appointments = next
	m.mu.Unlock()

	observability.RecordMutation("appointment", "remove")
	m.publish(ctx, entities.NewRecordEvent(entities.RecordEventAppointmentRemoved, id))
	return nil
}

// Book creates a patient and its first appointment in one save. Neither is kept if the save fails.
func (m *RecordManager) Book(ctx context.Context, in entities.PatientInput, date, notes string) (*entities.BookingResult, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := entities.ParseDateKey(date); err != nil {
		return nil, apperrors.NewValidationError("date must be formatted YYYY-MM-DD")
	}

	m.mu.Lock()
	patient := m.newPatient(in)
	appointment := m.newAppointment(patient, entities.AppointmentInput{
		PatientID: patient.ID,
		Date:      date,
		Notes:     notes,
	})

	nextPatients := append(clonePatientSlice(m.patients), patient)
	m.sortPatients(nextPatients)
	nextAppointments := append(cloneAppointmentSlice(m.appointments), appointment)
	sortAppointments(nextAppointments)

	if err := m.timed(ctx, "save_all", func() error { return m.repo.SaveAll(ctx, nextPatients, nextAppointments) }); err != nil {
		m.mu.Unlock()
		return nil, apperrors.NewInternalError("failed to save booking", err)
	}
	m.patients = nextPatients
	m.appointments = nextAppointments
	m.mu.Unlock()

	observability.RecordMutation("patient", "add")
	observability.RecordMutation("appointment", "add")
	observability.LoggerFromContext(ctx).Info().Str("patient_id", patient.ID).Str("date", date).Msg("online booking created")
	m.publish(ctx, entities.NewRecordEvent(entities.RecordEventBookingCreated, patient.ID, appointment.ID))

	p, a := *patient, *appointment
	return &entities.BookingResult{Patient: &p, Appointment: &a}, nil
}

func (m *RecordManager) newPatient(in entities.PatientInput) *entities.Patient {
	return in.ToPatient(m.newID(), m.Today().Format(entities.LastVisitLayout))
}

func (m *RecordManager) newAppointment(patient *entities.Patient, in entities.AppointmentInput) *entities.Appointment {
	name := strings.TrimSpace(in.PatientName)
	if name == "" {
		name = patient.Name
	}
	date, _ := entities.ParseDateKey(in.Date)
	return &entities.Appointment{
		ID:          m.newID(),
		PatientID:   patient.ID,
		PatientName: name,
		Date:        entities.DateKey(date),
		Notes:       strings.TrimSpace(in.Notes),
	}
}

// findPatient must be called with mu held
func (m *RecordManager) findPatient(id string) *entities.Patient {
	for _, p := range m.patients {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// sortPatients must be called with mu held; the collator is not safe for concurrent use
func (m *RecordManager) sortPatients(patients []*entities.Patient) {
	sort.SliceStable(patients, func(i, j int) bool {
		return m.collator.CompareString(patients[i].Name, patients[j].Name) < 0
	})
}

func sortAppointments(appointments []*entities.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].Date < appointments[j].Date
	})
}

func (m *RecordManager) timed(ctx context.Context, operation string, fn func() error) error {
	ctx, span := observability.StartSpan(ctx, "store."+operation)
	defer span.End()

	start := time.Now()
	err := fn()
	observability.RecordStoreMetric(ctx, m.metrics, operation, time.Since(start), err)
	observability.RecordError(span, err)
	return err
}

func (m *RecordManager) publish(ctx context.Context, event *entities.RecordEvent) {
	if m.events == nil {
		return
	}
	if err := m.events.Publish(ctx, providers.EventChannelRecords, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("event_type", string(event.Type)).Msg("failed to publish record event")
	}
}

func clonePatientSlice(in []*entities.Patient) []*entities.Patient {
	out := make([]*entities.Patient, len(in), len(in)+1)
	copy(out, in)
	return out
}

func cloneAppointmentSlice(in []*entities.Appointment) []*entities.Appointment {
	out := make([]*entities.Appointment, len(in), len(in)+1)
	copy(out, in)
	return out
}

func clonePatients(in []*entities.Patient) []*entities.Patient {
	out := make([]*entities.Patient, len(in))
	for i, p := range in {
		clone := *p
		out[i] = &clone
	}
	return out
}

func cloneAppointments(in []*entities.Appointment) []*entities.Appointment {
	out := make([]*entities.Appointment, len(in))
	for i, a := range in {
		clone := *a
		out[i] = &clone
	}
	return out
}

func nonNilPatients(in []*entities.Patient) []*entities.Patient {
	if in == nil {
		return []*entities.Patient{}
	}
	return in
}

func nonNilAppointments(in []*entities.Appointment) []*entities.Appointment {
	if in == nil {
		return []*entities.Appointment{}
	}
	return in
}
