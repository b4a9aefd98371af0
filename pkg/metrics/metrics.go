package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics. Every instance owns its registry,
// so several can coexist in one process (tests build one per server).
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec

	// Upstream API metrics
	UpstreamCalls   *prometheus.CounterVec
	UpstreamLatency *prometheus.HistogramVec

	// Booking metrics
	BookingsSubmitted prometheus.Counter
	BookingsOrphaned  prometheus.Counter
	SlotLookups       *prometheus.CounterVec

	// Dashboard metrics
	DashboardFetchFailures *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		RequestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		UpstreamCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "calls_total",
			Help:      "Total number of backend API calls",
		}, []string{"resource", "outcome"}),
		UpstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "call_duration_seconds",
			Help:      "Duration of backend API calls",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"resource"}),

		BookingsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "submitted_total",
			Help:      "Total number of bookings that created an appointment",
		}),
		BookingsOrphaned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "orphaned_total",
			Help:      "Total number of bookings that created a patient but no appointment",
		}),
		SlotLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "slot_lookups_total",
			Help:      "Total number of slot lookups",
		}, []string{"degraded"}),

		DashboardFetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "fetch_failures_total",
			Help:      "Total number of dashboard collections that failed to load",
		}, []string{"collection"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// The helpers below tolerate a nil receiver so components can run without metrics.

func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, path, status).Observe(seconds)
	m.RequestTotal.WithLabelValues(method, path, status).Inc()
}

func (m *Metrics) ObserveUpstream(resource, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.UpstreamCalls.WithLabelValues(resource, outcome).Inc()
	m.UpstreamLatency.WithLabelValues(resource).Observe(seconds)
}

func (m *Metrics) BookingSubmitted() {
	if m == nil {
		return
	}
	m.BookingsSubmitted.Inc()
}

func (m *Metrics) BookingOrphaned() {
	if m == nil {
		return
	}
	m.BookingsOrphaned.Inc()
}

func (m *Metrics) SlotLookup(degraded bool) {
	if m == nil {
		return
	}
	label := "false"
	if degraded {
		label = "true"
	}
	m.SlotLookups.WithLabelValues(label).Inc()
}

func (m *Metrics) DashboardFetchFailed(collection string) {
	if m == nil {
		return
	}
	m.DashboardFetchFailures.WithLabelValues(collection).Inc()
}
