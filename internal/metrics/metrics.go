// Package metrics defines the Prometheus instrumentation for the scoring
// service, exposed on the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all collectors. A custom registry can be injected for
// isolated collection in tests.
type Metrics struct {
	PredictionsTotal   *prometheus.CounterVec // Predictions served, labeled by model variant
	ExplanationsTotal  prometheus.Counter     // Explanations served
	ValidationFailures prometheus.Counter     // Requests rejected by schema validation
	ScoringLatency     prometheus.Histogram   // Core scoring/attribution latency in seconds

	HTTPRequests *prometheus.CounterVec // HTTP requests by route and status
	HTTPDuration prometheus.Histogram   // End-to-end request duration in seconds

	// Gatherer collects the registered metrics for the exposition endpoint.
	Gatherer prometheus.Gatherer
}

// New creates and registers all collectors on the default registry.
func New() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewWithRegistry creates collectors on a custom registry.
func NewWithRegistry(registry *prometheus.Registry) *Metrics {
	return newMetrics(registry, registry)
}

func newMetrics(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		Gatherer: gatherer,
		PredictionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of predictions served, by model variant",
		}, []string{"model"}),
		ExplanationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "explanations_total",
			Help: "Total number of explanations served",
		}),
		ValidationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Total number of requests rejected by schema validation",
		}),
		ScoringLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "scoring_latency_seconds",
			Help:    "Model scoring and attribution latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests, by route and status",
		}, []string{"route", "status"}),
		HTTPDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "End-to-end HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
