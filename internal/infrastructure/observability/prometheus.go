package observability

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by route pattern and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clinic_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RecordMutationsTotal counts successful record manager mutations
	RecordMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_record_mutations_total",
			Help: "Total number of patient and appointment mutations",
		},
		[]string{"entity", "operation"},
	)

	// AdvisoryCallsTotal counts advisory gateway calls by outcome
	AdvisoryCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_advisory_calls_total",
			Help: "Total number of advisory gateway calls",
		},
		[]string{"kind", "status"}, // status: success, error, canceled
	)
)

// RecordHTTPRequest records metrics for one HTTP request
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordMutation counts one record mutation
func RecordMutation(entity, operation string) {
	RecordMutationsTotal.WithLabelValues(entity, operation).Inc()
}

// RecordAdvisoryCall counts one advisory call outcome
func RecordAdvisoryCall(kind, status string) {
	AdvisoryCallsTotal.WithLabelValues(kind, status).Inc()
}

// RegisterStreamClients exposes the number of connected record stream clients.
// Registering twice is a no-op.
func RegisterStreamClients(count func() int) error {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "clinic_stream_clients",
		Help: "Number of connected record stream clients",
	}, func() float64 { return float64(count()) })

	if err := prometheus.Register(gauge); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return nil
		}
		return err
	}
	return nil
}
