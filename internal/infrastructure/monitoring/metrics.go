package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Service metrics
	ServiceCalls    *prometheus.CounterVec
	ServiceDuration *prometheus.HistogramVec

	// Engine metrics
	Evaluations          *prometheus.CounterVec
	EvaluationIterations *prometheus.HistogramVec
}

// NewMetrics creates a new metrics collector backed by its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "incgamma_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "incgamma_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"method", "path"},
		),

		// Service metrics
		ServiceCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "incgamma_service_calls_total",
				Help: "Total number of service tool calls",
			},
			[]string{"service", "tool", "status"},
		),
		ServiceDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "incgamma_service_duration_seconds",
				Help:    "Service tool call duration in seconds",
				Buckets: []float64{.00001, .0001, .001, .01, .1, 1, 10},
			},
			[]string{"service", "tool"},
		),

		// Engine metrics
		Evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "incgamma_evaluations_total",
				Help: "Total number of engine evaluations by function, expansion and outcome",
			},
			[]string{"function", "region", "outcome"},
		),
		EvaluationIterations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "incgamma_evaluation_iterations",
				Help:    "Series terms or continued fraction convergents used per evaluation",
				Buckets: prometheus.ExponentialBuckets(1, 2, 16),
			},
			[]string{"function", "region"},
		),
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordServiceCall records a service call
func (m *Metrics) RecordServiceCall(service, tool, status string, duration time.Duration) {
	m.ServiceCalls.WithLabelValues(service, tool, status).Inc()
	m.ServiceDuration.WithLabelValues(service, tool).Observe(duration.Seconds())
}

// RecordEvaluation records one engine evaluation. Only evaluations that ran
// an expansion contribute to the iteration histogram.
func (m *Metrics) RecordEvaluation(function, region, outcome string, iterations int) {
	m.Evaluations.WithLabelValues(function, region, outcome).Inc()
	if iterations > 0 {
		m.EvaluationIterations.WithLabelValues(function, region).Observe(float64(iterations))
	}
}
