package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/five82/flipclock/internal/countdown"
)

// Metrics exposes Prometheus metrics for a running countdown.
type Metrics struct {
	registry *prometheus.Registry

	remaining     prometheus.Gauge
	expired       prometheus.Gauge
	ticks         prometheus.Counter
	flips         *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// New creates the countdown metrics and registers them on reg. A nil reg
// gets a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: reg,

		remaining: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "flipclock_remaining_seconds",
				Help: "Seconds until the countdown target",
			},
		),

		expired: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "flipclock_expired",
				Help: "1 once the countdown reached its target",
			},
		),

		ticks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "flipclock_ticks_total",
				Help: "Total number of countdown evaluations",
			},
		),

		flips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flipclock_digit_flips_total",
				Help: "Total number of digit flip cycles started, by unit",
			},
			[]string{"unit"}, // day, hour, minute
		),

		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flipclock_notifications_total",
				Help: "Total number of expiry notifications by outcome",
			},
			[]string{"outcome"}, // sent, failed
		),
	}

	reg.MustRegister(m.remaining, m.expired, m.ticks, m.flips, m.notifications)
	return m
}

// ObserveStart seeds the remaining gauge from the construction snapshot.
func (m *Metrics) ObserveStart(s countdown.Snapshot) {
	m.setRemaining(s)
}

// ObserveTick records a non-expiring tick.
func (m *Metrics) ObserveTick(s countdown.Snapshot) {
	m.ticks.Inc()
	m.setRemaining(s)
}

func (m *Metrics) setRemaining(s countdown.Snapshot) {
	remaining := s.Target.Sub(s.At).Seconds()
	if remaining < 0 {
		remaining = 0
	}
	m.remaining.Set(remaining)
}

// ObserveFlip records the start of a flip cycle in slot.
func (m *Metrics) ObserveFlip(slot countdown.Slot) {
	m.flips.WithLabelValues(slot.Unit.String()).Inc()
}

// ObserveExpire records expiry.
func (m *Metrics) ObserveExpire() {
	m.ticks.Inc()
	m.remaining.Set(0)
	m.expired.Set(1)
}

// ObserveNotification records the outcome of delivering to one service.
func (m *Metrics) ObserveNotification(err error) {
	if err != nil {
		m.notifications.WithLabelValues("failed").Inc()
		return
	}
	m.notifications.WithLabelValues("sent").Inc()
}

// Handler returns the Prometheus HTTP handler for the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
