package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP responses",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Todo Metrics
	TodoOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_operations_total",
			Help: "Total number of todo operations",
		},
		[]string{"operation"}, // create, toggle, delete
	)

	// Summary Metrics
	SummaryGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_generations_total",
			Help: "Total number of summary generation requests by result",
		},
		[]string{"result"}, // generated, empty, failed
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Duration of LLM completion calls",
			Buckets: []float64{.25, .5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"provider"},
	)

	// Live query Metrics
	LiveSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "live_subscribers",
			Help: "Current number of open live query streams",
		},
	)

	// Authentication Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status", "type"}, // success/failure, login/register/anonymous
	)

	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_registrations_total",
			Help: "Total number of created users",
		},
		[]string{"kind"}, // password, anonymous
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by component and reason",
		},
		[]string{"component", "reason"},
	)
)

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackLLMRequest times a single completion call
func TrackLLMRequest(provider string) *prometheus.Timer {
	return prometheus.NewTimer(LLMRequestDuration.WithLabelValues(provider))
}

func TrackTodoOperation(operation string) {
	TodoOperationsTotal.WithLabelValues(operation).Inc()
}

func TrackSummaryGeneration(result string) {
	SummaryGenerationsTotal.WithLabelValues(result).Inc()
}

// TrackAuthAttempt records authentication attempts
func TrackAuthAttempt(status, authType string) {
	AuthAttempts.WithLabelValues(status, authType).Inc()
}

func TrackRegistration(anonymous bool) {
	kind := "password"
	if anonymous {
		kind = "anonymous"
	}
	Registrations.WithLabelValues(kind).Inc()
}

// TrackError increments the error counter
func TrackError(component, reason string) {
	ErrorsTotal.WithLabelValues(component, reason).Inc()
}
