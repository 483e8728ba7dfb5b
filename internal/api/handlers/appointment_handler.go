package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

// AppointmentRecords defines the appointment operations the handler needs
type AppointmentRecords interface {
	Appointments() []*entities.Appointment
	AddAppointment(ctx context.Context, in entities.AppointmentInput) (*entities.Appointment, error)
	RemoveAppointment(ctx context.Context, id string) error
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	records AppointmentRecords
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(records AppointmentRecords) *AppointmentHandler {
	return &AppointmentHandler{
		records: records,
	}
}

// ListAppointments handles GET /api/appointments
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments := h.records.Appointments()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// CreateAppointment handles POST /api/appointments
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var in entities.AppointmentInput
	if !decodeJSON(w, r, &in) {
		return
	}

	appointment, err := h.records.AddAppointment(r.Context(), in)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

// DeleteAppointment handles DELETE /api/appointments/{id}
func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.records.RemoveAppointment(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
