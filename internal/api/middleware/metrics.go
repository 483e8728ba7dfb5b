package middleware

import (
	"net/http"
	"time"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/observability"
)

// MetricsMiddleware records Prometheus request counters and latency per route pattern
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rw, r)

		observability.RecordHTTPRequest(r.Method, routeOf(r), rw.statusCode, time.Since(start))
	})
}
