package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Estimate sources
const (
	SourceHTTP      = "http"
	SourceWebsocket = "websocket"
	SourceCLI       = "cli"
)

// Manager owns the service metrics and the registry they live on.
// A disabled manager records nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         *prometheus.Registry

	// Estimation
	estimates       *prometheus.CounterVec
	scenesPriced    prometheus.Counter
	estimateErrors  *prometheus.CounterVec
	estimateLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Websocket
	wsConnections prometheus.Gauge
}

// NewManager creates a metrics manager on its own registry
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "vfxcost",
		subsystem:        "pricing",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		enabled:          true,
		constLabels:      map[string]string{},
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.estimates = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "estimates_total",
		Help:        "Total number of successful estimates by source",
		ConstLabels: m.constLabels,
	}, []string{"source"})

	m.scenesPriced = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "scenes_priced_total",
		Help:        "Total number of scene breakdowns computed",
		ConstLabels: m.constLabels,
	})

	m.estimateErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "estimate_errors_total",
		Help:        "Total number of rejected estimates by error type",
		ConstLabels: m.constLabels,
	}, []string{"type"})

	m.estimateLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "estimate_latency_milliseconds",
		Help:        "Histogram of estimate latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Total number of HTTP requests by route, method and status",
		ConstLabels: m.constLabels,
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"route", "method", "status_code"})

	m.wsConnections = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "websocket",
		Name:        "connections",
		Help:        "Current number of open estimate streams",
		ConstLabels: m.constLabels,
	})
}

// Enabled reports whether the manager records anything
func (m *Manager) Enabled() bool {
	return m != nil && m.enabled
}

// Registry returns the registry the metrics are registered on
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordEstimate counts a successful estimate of n scenes
func (m *Manager) RecordEstimate(source string, scenes int, elapsed time.Duration) {
	if !m.Enabled() {
		return
	}
	m.estimates.WithLabelValues(source).Inc()
	m.scenesPriced.Add(float64(scenes))
	m.estimateLatency.Observe(float64(elapsed.Microseconds()) / 1000)
}

// RecordEstimateError counts a rejected estimate
func (m *Manager) RecordEstimateError(errType string) {
	if !m.Enabled() {
		return
	}
	m.estimateErrors.WithLabelValues(errType).Inc()
}

// RecordHTTPRequest counts a request and observes its duration
func (m *Manager) RecordHTTPRequest(route, method, statusCode string, elapsed time.Duration) {
	if !m.Enabled() {
		return
	}
	m.httpRequests.WithLabelValues(route, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, statusCode).Observe(float64(elapsed.Microseconds()) / 1000)
}

// StreamOpened tracks an opened websocket stream
func (m *Manager) StreamOpened() {
	if !m.Enabled() {
		return
	}
	m.wsConnections.Inc()
}

// StreamClosed tracks a closed websocket stream
func (m *Manager) StreamClosed() {
	if !m.Enabled() {
		return
	}
	m.wsConnections.Dec()
}
