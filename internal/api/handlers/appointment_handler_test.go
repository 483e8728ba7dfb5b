package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/handlers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

func TestAppointmentHandler_CreateAppointment(t *testing.T) {
	records := newRecords(t)
	handler := handlers.NewAppointmentHandler(records)

	t.Run("fills patient name", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CreateAppointment(w, jsonRequest(t, http.MethodPost, "/api/appointments", map[string]string{
			"patientId": "p6",
			"date":      "2025-03-21",
			"notes":     "Check on progress",
		}))

		require.Equal(t, http.StatusCreated, w.Code)
		var a entities.Appointment
		decodeBody(t, w, &a)
		assert.Equal(t, "Anika Gupta", a.PatientName)
		assert.Equal(t, "2025-03-21", a.Date)
	})

	t.Run("requires date and patient", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CreateAppointment(w, jsonRequest(t, http.MethodPost, "/api/appointments", map[string]string{"patientId": "p6"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Please select a date and a patient.", errorMessage(t, w))
	})

	t.Run("rejects unknown patient", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CreateAppointment(w, jsonRequest(t, http.MethodPost, "/api/appointments", map[string]string{
			"patientId": "ghost",
			"date":      "2025-03-21",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAppointmentHandler_ListAndDelete(t *testing.T) {
	records := newRecords(t)
	handler := handlers.NewAppointmentHandler(records)

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/app1", nil)
	req.SetPathValue("id", "app1")
	w := httptest.NewRecorder()
	handler.DeleteAppointment(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	handler.ListAppointments(w, httptest.NewRequest(http.MethodGet, "/api/appointments", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Appointments []entities.Appointment `json:"appointments"`
		Count        int                    `json:"count"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, 7, body.Count)
	for i := 1; i < len(body.Appointments); i++ {
		assert.LessOrEqual(t, body.Appointments[i-1].Date, body.Appointments[i].Date)
	}
}
