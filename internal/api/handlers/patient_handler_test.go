package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/export"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/handlers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

func TestPatientHandler_ListPatients(t *testing.T) {
	handler := handlers.NewPatientHandler(newRecords(t))

	w := httptest.NewRecorder()
	handler.ListPatients(w, httptest.NewRequest(http.MethodGet, "/api/patients?q=sharma", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Patients []entities.Patient `json:"patients"`
		Count    int                `json:"count"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "Aarav Sharma", body.Patients[0].Name)
}

func TestPatientHandler_CreatePatient(t *testing.T) {
	records := newRecords(t)
	handler := handlers.NewPatientHandler(records)

	t.Run("creates patient", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CreatePatient(w, jsonRequest(t, http.MethodPost, "/api/patients", map[string]interface{}{
			"name":      "Ishaan Verma",
			"age":       34,
			"gender":    "Male",
			"condition": "Back Pain",
			"history":   "Desk job.",
		}))

		require.Equal(t, http.StatusCreated, w.Code)
		var p entities.Patient
		decodeBody(t, w, &p)
		assert.Equal(t, "id-1", p.ID)
		assert.Equal(t, "03/10/2025", p.LastVisit)
		assert.Len(t, records.Patients(), 9)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CreatePatient(w, jsonRequest(t, http.MethodPost, "/api/patients", map[string]interface{}{"name": "No Age"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Please fill in Name, Age, and Condition.", errorMessage(t, w))
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/patients", bytes.NewBufferString("{"))
		handler.CreatePatient(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPatientHandler_GetPatient(t *testing.T) {
	handler := handlers.NewPatientHandler(newRecords(t))

	req := httptest.NewRequest(http.MethodGet, "/api/patients/p4", nil)
	req.SetPathValue("id", "p4")
	w := httptest.NewRecorder()
	handler.GetPatient(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var p entities.Patient
	decodeBody(t, w, &p)
	assert.Equal(t, "Sneha Reddy", p.Name)

	req = httptest.NewRequest(http.MethodGet, "/api/patients/nobody", nil)
	req.SetPathValue("id", "nobody")
	w = httptest.NewRecorder()
	handler.GetPatient(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatientHandler_DeletePatient(t *testing.T) {
	records := newRecords(t)
	handler := handlers.NewPatientHandler(records)

	for _, id := range []string{"p2", "p2"} {
		req := httptest.NewRequest(http.MethodDelete, "/api/patients/"+id, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.DeletePatient(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	assert.Len(t, records.Patients(), 7)
	assert.Len(t, records.Appointments(), 7)
}

func TestPatientHandler_ExportRoster(t *testing.T) {
	handler := handlers.NewPatientHandler(newRecords(t))

	w := httptest.NewRecorder()
	handler.ExportRoster(w, httptest.NewRequest(http.MethodGet, "/api/patients/export.xlsx", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.PatientsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 9)
}
