package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the studio service.
type Metrics struct {
	registry             *prometheus.Registry
	requestsTotal        prometheus.Counter
	productionsStarted   prometheus.Counter
	productionsCompleted prometheus.Counter
	productionsFailed    prometheus.Counter
	engineCallSeconds    prometheus.Histogram
	liveSessionsActive   prometheus.Gauge
	errorsTotal          prometheus.Counter
}

// New creates and registers Prometheus metrics for the studio.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studio_requests_total",
		Help: "Total number of HTTP requests received",
	})
	productionsStarted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studio_productions_started_total",
		Help: "Total number of production runs launched",
	})
	productionsCompleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studio_productions_completed_total",
		Help: "Total number of production runs that completed",
	})
	productionsFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studio_productions_failed_total",
		Help: "Total number of production runs that failed",
	})
	engineCallSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "studio_engine_call_seconds",
		Help:    "Latency of generation engine calls",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 11),
	})
	liveSessionsActive := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "studio_live_sessions_active",
		Help: "Number of live audio sessions currently open",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studio_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})

	registry.MustRegister(
		requestsTotal,
		productionsStarted,
		productionsCompleted,
		productionsFailed,
		engineCallSeconds,
		liveSessionsActive,
		errorsTotal,
	)

	return &Metrics{
		registry:             registry,
		requestsTotal:        requestsTotal,
		productionsStarted:   productionsStarted,
		productionsCompleted: productionsCompleted,
		productionsFailed:    productionsFailed,
		engineCallSeconds:    engineCallSeconds,
		liveSessionsActive:   liveSessionsActive,
		errorsTotal:          errorsTotal,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncProductionsStarted increments the launched-runs counter.
func (m *Metrics) IncProductionsStarted() {
	m.productionsStarted.Inc()
}

// IncProductionsCompleted increments the completed-runs counter.
func (m *Metrics) IncProductionsCompleted() {
	m.productionsCompleted.Inc()
}

// IncProductionsFailed increments the failed-runs counter.
func (m *Metrics) IncProductionsFailed() {
	m.productionsFailed.Inc()
}

// ObserveEngineCall records the duration of one generation engine call.
func (m *Metrics) ObserveEngineCall(d time.Duration) {
	m.engineCallSeconds.Observe(d.Seconds())
}

// SetLiveSessionsActive sets the open live sessions gauge.
func (m *Metrics) SetLiveSessionsActive(n int) {
	m.liveSessionsActive.Set(float64(n))
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
