package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/export"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/observability"
)

// PatientRecords defines the patient operations the handler needs
type PatientRecords interface {
	Patients() []*entities.Patient
	Appointments() []*entities.Appointment
	SearchPatients(term string) []*entities.Patient
	Patient(id string) (*entities.Patient, error)
	AddPatient(ctx context.Context, in entities.PatientInput) (*entities.Patient, error)
	RemovePatient(ctx context.Context, id string) error
}

// PatientHandler handles patient requests
type PatientHandler struct {
	records PatientRecords
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(records PatientRecords) *PatientHandler {
	return &PatientHandler{records: records}
}

// ListPatients handles GET /api/patients?q=
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients := h.records.SearchPatients(r.URL.Query().Get("q"))
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": patients,
		"count":    len(patients),
	})
}

// CreatePatient handles POST /api/patients
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var in entities.PatientInput
	if !decodeJSON(w, r, &in) {
		return
	}

	patient, err := h.records.AddPatient(r.Context(), in)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, patient)
}

// GetPatient handles GET /api/patients/{id}
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.records.Patient(r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, patient)
}

// DeletePatient handles DELETE /api/patients/{id}. The patient's appointments go with it.
func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	if err := h.records.RemovePatient(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportRoster handles GET /api/patients/export.xlsx
func (h *PatientHandler) ExportRoster(w http.ResponseWriter, r *http.Request) {
	data, err := export.Roster(h.records.Patients(), h.records.Appointments())
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("failed to build roster workbook")
		respondWithError(w, http.StatusInternalServerError, "failed to export roster")
		return
	}

	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="patient-roster.xlsx"`)
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
