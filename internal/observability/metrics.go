// Package observability defines the Prometheus collectors for the service
// and exposes the scrape handler.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the wisdom backend.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	PipelineStageDuration *prometheus.HistogramVec
	PipelineFailuresTotal *prometheus.CounterVec
	RetrievalResultsCount prometheus.Histogram
	ChunksIndexedTotal    prometheus.Counter
}

// New creates and registers all collectors on reg. Passing a dedicated
// registry keeps tests isolated from the default one.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		PipelineStageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipeline_stage_duration_seconds",
				Help:    "Latency per generation pipeline stage.",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"stage"},
		),
		PipelineFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_failures_total",
				Help: "Pipeline failures by stage.",
			},
			[]string{"stage"},
		),
		RetrievalResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "retrieval_results_count",
				Help:    "Number of chunks returned per retrieval.",
				Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
			},
		),
		ChunksIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chunks_indexed_total",
				Help: "Total corpus chunks embedded and indexed at startup.",
			},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.PipelineStageDuration,
		m.PipelineFailuresTotal,
		m.RetrievalResultsCount,
		m.ChunksIndexedTotal,
	)
	return m
}

// ObserveStage records one pipeline stage execution.
func (m *Metrics) ObserveStage(stage string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.PipelineStageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		m.PipelineFailuresTotal.WithLabelValues(stage).Inc()
	}
}

// Handler returns the scrape handler for reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
