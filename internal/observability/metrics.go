package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes prometheus collectors for requests, taxonomy errors and
// store operations.
type Metrics struct {
	Registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
}

// NewMetrics initializes and registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "intake",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed.",
			},
			[]string{"endpoint", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "intake",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"endpoint", "method", "status"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "intake",
				Name:      "errors_total",
				Help:      "Failures by endpoint and taxonomy code.",
			},
			[]string{"endpoint", "code"},
		),
	}

	registry.MustRegister(m.requestsTotal, m.requestDuration, m.errorsTotal)
	return m
}

// RecordRequest observes one completed request.
func (m *Metrics) RecordRequest(endpoint, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestsTotal.WithLabelValues(endpoint, method, code).Inc()
	m.requestDuration.WithLabelValues(endpoint, method, code).Observe(duration.Seconds())
}

// RecordError increments the counter for a taxonomy error code.
func (m *Metrics) RecordError(endpoint, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(endpoint, code).Inc()
}
