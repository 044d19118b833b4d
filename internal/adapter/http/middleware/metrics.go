package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/finvue/debtplan/internal/infrastructure/metrics"
)

// MetricsMiddleware records HTTP metrics on the shared registry.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with request metrics.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		m.metrics.HTTPInFlight.Inc()
		defer m.metrics.HTTPInFlight.Dec()

		// Wrap response writer to capture status code
		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

const userPathPrefix = "/api/v1/users/"

// normalizePath collapses user IDs so metric labels stay low-cardinality.
// /api/v1/users/01ABC123/plan -> /api/v1/users/:id/plan
func normalizePath(path string) string {
	if len(path) <= len(userPathPrefix) || path[:len(userPathPrefix)] != userPathPrefix {
		return path
	}

	rest := path[len(userPathPrefix):]
	if rest[0] == '/' {
		return path
	}

	suffix := ""
	for i := 0; i < len(rest); i++ {
		if rest[i] == '/' {
			suffix = rest[i:]
			break
		}
	}

	return userPathPrefix + ":id" + suffix
}
