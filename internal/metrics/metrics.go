package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics
type Metrics struct {
	// Detection pipeline counters
	DetectionsReceived atomic.Uint64
	DetectionsRejected atomic.Uint64
	AlertsSuppressed   atomic.Uint64
	AlertsCreated      atomic.Uint64
	AlertsAcknowledged atomic.Uint64

	// Fan-out counters
	BroadcastDropped atomic.Uint64
	ActiveClients    atomic.Uint64
	TotalClients     atomic.Uint64

	// Error counters
	StoreErrors  atomic.Uint64
	NotifyErrors atomic.Uint64

	// Prometheus collectors
	registry *prometheus.Registry
}

// New creates a new Metrics instance with Prometheus collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.registerPrometheusMetrics()

	return m
}

func (m *Metrics) registerPrometheusMetrics() {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "surveillance_detections_received_total",
			Help: "Total detection events received for ingest",
		},
		func() float64 { return float64(m.DetectionsReceived.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "surveillance_detections_rejected_total",
			Help: "Total detections rejected by the classifier",
		},
		func() float64 { return float64(m.DetectionsRejected.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "surveillance_alerts_suppressed_total",
			Help: "Total detections suppressed by the dedup window",
		},
		func() float64 { return float64(m.AlertsSuppressed.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "surveillance_alerts_created_total",
			Help: "Total alerts persisted",
		},
		func() float64 { return float64(m.AlertsCreated.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "surveillance_alerts_acknowledged_total",
			Help: "Total alerts acknowledged by administrators",
		},
		func() float64 { return float64(m.AlertsAcknowledged.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "surveillance_broadcast_dropped_total",
			Help: "Total push messages dropped for slow subscribers",
		},
		func() float64 { return float64(m.BroadcastDropped.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "surveillance_active_clients",
			Help: "Number of connected WebSocket clients",
		},
		func() float64 { return float64(m.ActiveClients.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "surveillance_total_clients",
			Help: "Total WebSocket clients connected since start",
		},
		func() float64 { return float64(m.TotalClients.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "surveillance_store_errors_total",
			Help: "Total persistence failures during ingest",
		},
		func() float64 { return float64(m.StoreErrors.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "surveillance_notify_errors_total",
			Help: "Total notification dispatch failures",
		},
		func() float64 { return float64(m.NotifyErrors.Load()) },
	))
}

// Handler returns the Prometheus HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
