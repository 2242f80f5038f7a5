// Package metrics exposes prometheus instrumentation for the HTTP API and
// the analysis pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the registry and the collectors used across the service
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec

	DocumentsAnalyzed *prometheus.CounterVec
	AnalysisDuration  prometheus.Histogram
	QueueDepth        prometheus.Gauge
}

// New creates a Metrics instance with its own registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		DocumentsAnalyzed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "documents_analyzed_total",
				Help: "Total number of documents processed by the pipeline.",
			},
			[]string{"status"},
		),
		AnalysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "document_analysis_duration_seconds",
				Help:    "Wall time spent analyzing one document.",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
			},
		),
		QueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pipeline_queue_depth",
				Help: "Number of documents waiting for an analysis worker.",
			},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequests,
		m.DocumentsAnalyzed,
		m.AnalysisDuration,
		m.QueueDepth,
	)

	return m
}

// Handler returns the /metrics HTTP handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
