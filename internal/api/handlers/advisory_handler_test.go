package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/handlers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/middleware"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/ayurvedaclinic/backend/pkg/errors"
)

type MockAdvisoryService struct {
	mock.Mock
}

func (m *MockAdvisoryService) Search(ctx context.Context, requestID, query string) (*entities.SearchResponse, error) {
	args := m.Called(ctx, requestID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SearchResponse), args.Error(1)
}

func (m *MockAdvisoryService) PatientAdvice(ctx context.Context, requestID, patientID string, kind entities.AdvisoryKind) (*entities.AdvisoryText, error) {
	args := m.Called(ctx, requestID, patientID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AdvisoryText), args.Error(1)
}

func (m *MockAdvisoryService) WellnessPlan(ctx context.Context, requestID, patientID string) (*entities.WellnessPlan, error) {
	args := m.Called(ctx, requestID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WellnessPlan), args.Error(1)
}

func (m *MockAdvisoryService) CancelScreen(screen entities.View) int {
	return m.Called(screen).Int(0)
}

func TestAdvisoryHandler_Search(t *testing.T) {
	svc := new(MockAdvisoryService)
	handler := handlers.NewAdvisoryHandler(svc)
	svc.On("Search", mock.Anything, "req-7", "ashwagandha").
		Return(&entities.SearchResponse{Content: "An adaptogen.", Sources: []entities.GroundingSource{}}, nil)

	req := jsonRequest(t, http.MethodPost, "/api/advisory/search", map[string]string{"query": "ashwagandha"})
	req = req.WithContext(middleware.WithRequestID(req.Context(), "req-7"))
	w := httptest.NewRecorder()
	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp entities.SearchResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "An adaptogen.", resp.Content)
	svc.AssertExpectations(t)
}

func TestAdvisoryHandler_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"gateway failure", apperrors.NewExternalError("Failed to fetch information. Please check your API key and try again.", errors.New("503")), http.StatusBadGateway},
		{"superseded", apperrors.NewCanceledError("advisory request was canceled", nil), http.StatusConflict},
		{"empty query", apperrors.NewValidationError("query is required"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAdvisoryService)
			handler := handlers.NewAdvisoryHandler(svc)
			svc.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			handler.Search(w, jsonRequest(t, http.MethodPost, "/api/advisory/search", map[string]string{"query": "x"}))

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, errorMessage(t, w))
		})
	}
}

func TestAdvisoryHandler_PatientAdvisory(t *testing.T) {
	svc := new(MockAdvisoryService)
	handler := handlers.NewAdvisoryHandler(svc)
	svc.On("PatientAdvice", mock.Anything, mock.Anything, "p1", entities.AdvisoryKindInsight).
		Return(&entities.AdvisoryText{Kind: entities.AdvisoryKindInsight, PatientID: "p1", Text: "notes"}, nil)
	svc.On("WellnessPlan", mock.Anything, mock.Anything, "p1").
		Return(&entities.WellnessPlan{PatientID: "p1", Text: "### A\na", Sections: []entities.PlanSection{{Heading: "A", Body: "a"}}}, nil)

	call := func(kind string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/advisory/patients/p1/"+kind, nil)
		req.SetPathValue("id", "p1")
		req.SetPathValue("kind", kind)
		w := httptest.NewRecorder()
		handler.PatientAdvisory(w, req)
		return w
	}

	w := call("insight")
	require.Equal(t, http.StatusOK, w.Code)
	var text entities.AdvisoryText
	decodeBody(t, w, &text)
	assert.Equal(t, "notes", text.Text)

	w = call("plan")
	require.Equal(t, http.StatusOK, w.Code)
	var plan entities.WellnessPlan
	decodeBody(t, w, &plan)
	assert.Equal(t, "A", plan.Sections[0].Heading)

	w = call("horoscope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdvisoryHandler_CancelTasks(t *testing.T) {
	svc := new(MockAdvisoryService)
	handler := handlers.NewAdvisoryHandler(svc)
	svc.On("CancelScreen", entities.ViewPatients).Return(2)

	req := httptest.NewRequest(http.MethodDelete, "/api/advisory/tasks/patients", nil)
	req.SetPathValue("screen", "patients")
	w := httptest.NewRecorder()
	handler.CancelTasks(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.EqualValues(t, 2, body["canceled"])

	req = httptest.NewRequest(http.MethodDelete, "/api/advisory/tasks/nowhere", nil)
	req.SetPathValue("screen", "nowhere")
	w = httptest.NewRecorder()
	handler.CancelTasks(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
