package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/events"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/memory"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/store"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/handlers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/middleware"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/routes"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/application/services"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/clients/gemini"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	bus := events.NewMemoryEventBus()
	t.Cleanup(func() { _ = bus.Close() })

	records := services.NewRecordManager(store.NewClinicStore(memory.NewKVStore()),
		services.WithClock(func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }),
		services.WithLocation(time.UTC),
		services.WithEventBus(bus),
	)
	require.NoError(t, records.Load(context.Background()))

	tasks := services.NewTaskRegistry()
	views := services.NewViewController(tasks)

	router := routes.NewRouter(routes.Handlers{
		Patients:     handlers.NewPatientHandler(records),
		Appointments: handlers.NewAppointmentHandler(records),
		Calendar:     handlers.NewCalendarHandler(services.NewCalendarService(records)),
		Dashboard:    handlers.NewDashboardHandler(services.NewDashboardService(records)),
		Bookings:     handlers.NewBookingHandler(services.NewBookingService(records, views)),
		Advisory:     handlers.NewAdvisoryHandler(services.NewAdvisoryService(gemini.Unavailable{}, records, tasks)),
		Views:        handlers.NewViewHandler(views),
		Stream:       handlers.NewSSEHandler(bus),
	}, []string{"http://localhost:5173"}, nil)
	return router.SetupRoutes()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	w := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_PatientRoutes(t *testing.T) {
	h := newTestServer(t)

	w := serve(h, httptest.NewRequest(http.MethodGet, "/api/patients", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 8, list.Count)

	w = serve(h, httptest.NewRequest(http.MethodGet, "/api/patients/p1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// The export route wins over the {id} wildcard.
	w = serve(h, httptest.NewRequest(http.MethodGet, "/api/patients/export.xlsx", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")

	w = serve(h, httptest.NewRequest(http.MethodDelete, "/api/patients/p1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(h, httptest.NewRequest(http.MethodGet, "/api/patients/p1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_AdvisoryWithoutKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/advisory/search", strings.NewReader(`{"query":"turmeric"}`))
	req.Header.Set(middleware.RequestIDHeader, "req-1")

	w := serve(newTestServer(t), req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "req-1", w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/patients", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	w := serve(newTestServer(t), req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_MethodAndPathMismatch(t *testing.T) {
	h := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, serve(h, httptest.NewRequest(http.MethodGet, "/api/unknown", nil)).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(h, httptest.NewRequest(http.MethodPatch, "/api/view", nil)).Code)
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestServer(t)
	serve(h, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	w := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="GET /api/dashboard"`)
}
