// Package metrics exposes Prometheus instrumentation for schema operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "graphschema"

// Metrics holds the collectors of one engine
type Metrics struct {
	Operations   *prometheus.CounterVec
	Errors       *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
	InFlight     *prometheus.GaugeVec
	IndexEnabled *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "operations_total",
			Help:      "Schema operations handled, by graph context and operation",
		}, []string{"graph", "operation"}),

		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "operation_errors_total",
			Help:      "Failed schema operations, by error kind",
		}, []string{"graph", "operation", "kind"}),

		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "operation_duration_seconds",
			Help:      "Schema operation latency including commit",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30, 120},
		}, []string{"graph", "operation"}),

		InFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "operations_in_flight",
			Help:      "Schema operations currently running",
		}, []string{"graph"}),

		IndexEnabled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "indices_enabled_total",
			Help:      "Composite indices moved to ENABLED",
		}, []string{"graph", "element"}),
	}

	if reg != nil {
		reg.MustRegister(m.Operations, m.Errors, m.Duration, m.InFlight, m.IndexEnabled)
	}
	return m
}

// Observe records one finished operation. kind is empty on success.
func (m *Metrics) Observe(graph, operation, kind string, elapsed time.Duration) {
	m.Operations.WithLabelValues(graph, operation).Inc()
	m.Duration.WithLabelValues(graph, operation).Observe(elapsed.Seconds())
	if kind != "" {
		m.Errors.WithLabelValues(graph, operation, kind).Inc()
	}
}
