package observability

import "time"

// Outcomes reported through IncrementHealthChecks.
const (
	OutcomeRecorded = "recorded"
	OutcomeFailed   = "failed"
)

// MetricsRegistry provides an interface for recording application metrics
// so handlers don't touch the global Prometheus collectors directly.
type MetricsRegistry interface {
	// HTTP Request metrics
	IncrementRequests(endpoint, method, status string)
	RecordRequestLatency(endpoint, method string, duration time.Duration)

	// Health check store metrics
	IncrementHealthChecks(outcome string)
	RecordStoreLatency(backend string, duration time.Duration)
}

// PrometheusRegistry implements MetricsRegistry using the global Prometheus metrics
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

func (r *PrometheusRegistry) IncrementRequests(endpoint, method, status string) {
	RequestCount.WithLabelValues(endpoint, method, status).Inc()
}

func (r *PrometheusRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	RequestLatency.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementHealthChecks(outcome string) {
	HealthCheckCount.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRegistry) RecordStoreLatency(backend string, duration time.Duration) {
	HealthCheckStoreLatency.WithLabelValues(backend).Observe(duration.Seconds())
}

// NoOpRegistry implements MetricsRegistry with no-op methods for testing
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementRequests(endpoint, method, status string)                    {}
func (r *NoOpRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}
func (r *NoOpRegistry) IncrementHealthChecks(outcome string)                                 {}
func (r *NoOpRegistry) RecordStoreLatency(backend string, duration time.Duration)            {}
