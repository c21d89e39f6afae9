package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per endpoint, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webapp_requests_total",
			Help: "Total API requests received",
		},
		[]string{"endpoint", "method", "status"},
	)

	// request latency in seconds per endpoint/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webapp_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// health check writes labelled by outcome (recorded, failed)
	HealthCheckCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webapp_health_checks_total",
			Help: "Total health check writes attempted",
		},
		[]string{"outcome"},
	)

	// latency of the store write per backend
	HealthCheckStoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webapp_health_check_store_duration_seconds",
			Help:    "Duration of health check store writes",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)
)

func init() {
	// register all metrics
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		HealthCheckCount,
		HealthCheckStoreLatency,
	)
}
