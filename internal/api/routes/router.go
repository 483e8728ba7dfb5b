package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/handlers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/middleware"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	patientHandler     *handlers.PatientHandler
	appointmentHandler *handlers.AppointmentHandler
	calendarHandler    *handlers.CalendarHandler
	dashboardHandler   *handlers.DashboardHandler
	bookingHandler     *handlers.BookingHandler
	advisoryHandler    *handlers.AdvisoryHandler
	viewHandler        *handlers.ViewHandler
	sseHandler         *handlers.SSEHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// Handlers groups the handlers the router mounts
type Handlers struct {
	Patients     *handlers.PatientHandler
	Appointments *handlers.AppointmentHandler
	Calendar     *handlers.CalendarHandler
	Dashboard    *handlers.DashboardHandler
	Bookings     *handlers.BookingHandler
	Advisory     *handlers.AdvisoryHandler
	Views        *handlers.ViewHandler
	Stream       *handlers.SSEHandler
}

// NewRouter creates a new router
func NewRouter(h Handlers, allowedOrigins []string, metrics *observability.Metrics) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		patientHandler:     h.Patients,
		appointmentHandler: h.Appointments,
		calendarHandler:    h.Calendar,
		dashboardHandler:   h.Dashboard,
		bookingHandler:     h.Bookings,
		advisoryHandler:    h.Advisory,
		viewHandler:        h.Views,
		sseHandler:         h.Stream,
		allowedOrigins:     allowedOrigins,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})
	r.mux.Handle("GET /metrics", promhttp.Handler())

	// Patient endpoints
	r.mux.HandleFunc("GET /api/patients", r.patientHandler.ListPatients)
	r.mux.HandleFunc("POST /api/patients", r.patientHandler.CreatePatient)
	r.mux.HandleFunc("GET /api/patients/export.xlsx", r.patientHandler.ExportRoster)
	r.mux.HandleFunc("GET /api/patients/{id}", r.patientHandler.GetPatient)
	r.mux.HandleFunc("DELETE /api/patients/{id}", r.patientHandler.DeletePatient)

	// Appointment endpoints
	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.ListAppointments)
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.CreateAppointment)
	r.mux.HandleFunc("DELETE /api/appointments/{id}", r.appointmentHandler.DeleteAppointment)

	r.mux.HandleFunc("GET /api/calendar", r.calendarHandler.GetCalendar)
	r.mux.HandleFunc("GET /api/dashboard", r.dashboardHandler.GetDashboard)
	r.mux.HandleFunc("POST /api/bookings", r.bookingHandler.CreateBooking)

	// Advisory endpoints
	r.mux.HandleFunc("POST /api/advisory/search", r.advisoryHandler.Search)
	r.mux.HandleFunc("POST /api/advisory/patients/{id}/{kind}", r.advisoryHandler.PatientAdvisory)
	r.mux.HandleFunc("DELETE /api/advisory/tasks/{screen}", r.advisoryHandler.CancelTasks)

	r.mux.HandleFunc("GET /api/view", r.viewHandler.GetView)
	r.mux.HandleFunc("PUT /api/view", r.viewHandler.SetView)

	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/records", r.sseHandler.StreamRecords)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// Metrics and observability must see the request the mux routes so r.Pattern is set.
	var handler http.Handler = r.mux
	handler = middleware.MetricsMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)

	// Apply HTTP performance optimizations (compression, ETag)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so preflight never reaches the handlers
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
