// Package monitoring exposes prometheus metrics for the assistant service.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service collectors behind one registry
type Metrics struct {
	registry *prometheus.Registry

	turnsTotal      *prometheus.CounterVec
	turnDuration    prometheus.Histogram
	cartOpsTotal    *prometheus.CounterVec
	ordersConfirmed prometheus.Counter
	sessionsOpen    prometheus.Gauge
}

// NewMetrics creates and registers the service collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		turnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_turns_total",
				Help: "Assistant turns processed, by resolved intent and response language",
			},
			[]string{"intent", "lang"},
		),
		turnDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assistant_turn_duration_seconds",
				Help:    "Time spent computing one assistant turn",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		cartOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_ops_applied_total",
				Help: "Cart mutations applied, by operation type",
			},
			[]string{"type"},
		),
		ordersConfirmed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_confirmed_total",
				Help: "Orders confirmed and archived",
			},
		),
		sessionsOpen: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sessions_open",
				Help: "Currently open ordering sessions",
			},
		),
	}

	m.registry.MustRegister(
		m.turnsTotal,
		m.turnDuration,
		m.cartOpsTotal,
		m.ordersConfirmed,
		m.sessionsOpen,
	)
	return m
}

// ObserveTurn records one processed turn
func (m *Metrics) ObserveTurn(intent, lang string, elapsed time.Duration) {
	m.turnsTotal.WithLabelValues(intent, lang).Inc()
	m.turnDuration.Observe(elapsed.Seconds())
}

// RecordCartOp counts one applied cart mutation
func (m *Metrics) RecordCartOp(opType string) {
	m.cartOpsTotal.WithLabelValues(opType).Inc()
}

// RecordOrderConfirmed counts one archived order
func (m *Metrics) RecordOrderConfirmed() {
	m.ordersConfirmed.Inc()
}

// SetSessionsOpen tracks the live session count
func (m *Metrics) SetSessionsOpen(n int) {
	m.sessionsOpen.Set(float64(n))
}

// Handler serves the metrics endpoint for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
