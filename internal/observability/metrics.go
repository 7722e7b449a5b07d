// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics for the analysis service.
type Metrics struct {
	// Pipeline metrics
	PipelineRunsTotal  *prometheus.CounterVec // outcome: ok, invalid_request, data_unavailable, insufficient_data, internal
	PipelineDuration   prometheus.Histogram
	IndicatorFallbacks *prometheus.CounterVec // indicator: bollinger, rsi, macd

	// HTTP metrics
	RequestDuration *prometheus.HistogramVec // endpoint
}

// NewMetrics creates and registers all metrics under the given namespace.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "findash"
	}

	return &Metrics{
		PipelineRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total pipeline runs by outcome",
		}, []string{"outcome"}),
		PipelineDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full pipeline run, including fetch retries",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		IndicatorFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "indicator_fallbacks_total",
			Help:      "Indicator derivations that degraded to their fallback",
		}, []string{"indicator"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by endpoint",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
