// Package metrics exposes Prometheus collectors for the host emulator.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "formal"

// Metrics groups the host collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	events        *prometheus.CounterVec
	handlerErrors *prometheus.CounterVec
	deliveries    *prometheus.CounterVec
	deliveryBytes prometheus.Histogram
	urlOpens      *prometheus.CounterVec
	applied       prometheus.Counter
}

// MustNewMetrics registers the collectors with reg, panicking on conflict.
// Use a fresh prometheus.NewRegistry() in tests.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	m, err := NewMetrics(reg)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMetrics registers the collectors with reg. Collectors that are already
// registered are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "host",
			Name:      "events_total",
			Help:      "Host events dispatched, by event name.",
		}, []string{"event"}),
		handlerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "host",
			Name:      "handler_errors_total",
			Help:      "Errors returned by event handlers, by event name.",
		}, []string{"event"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appmessage",
			Name:      "deliveries_total",
			Help:      "AppMessage deliveries, by outcome.",
		}, []string{"status"}),
		deliveryBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "appmessage",
			Name:      "payload_bytes",
			Help:      "Encoded AppMessage size.",
			Buckets:   []float64{16, 32, 64, 96, 128, 256},
		}),
		urlOpens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "host",
			Name:      "url_opens_total",
			Help:      "Open-URL requests, by outcome.",
		}, []string{"status"}),
		applied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "device",
			Name:      "settings_applied_total",
			Help:      "Settings applied by the device inbox.",
		}),
	}

	m.events = register(reg, m.events)
	m.handlerErrors = register(reg, m.handlerErrors)
	m.deliveries = register(reg, m.deliveries)
	m.deliveryBytes = register(reg, m.deliveryBytes)
	m.urlOpens = register(reg, m.urlOpens)
	m.applied = register(reg, m.applied)

	for _, c := range []prometheus.Collector{m.events, m.handlerErrors, m.deliveries, m.deliveryBytes, m.urlOpens, m.applied} {
		if c == nil {
			return nil, errors.New("metrics: failed to register collector")
		}
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		var zero C
		return zero
	}
	return c
}

// Event counts one dispatched event.
func (m *Metrics) Event(name string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(name).Inc()
}

// HandlerError counts one handler failure.
func (m *Metrics) HandlerError(name string) {
	if m == nil {
		return
	}
	m.handlerErrors.WithLabelValues(name).Inc()
}

// Delivery counts one delivery outcome and its size.
func (m *Metrics) Delivery(status string, size int) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(status).Inc()
	if size > 0 {
		m.deliveryBytes.Observe(float64(size))
	}
}

// URLOpen counts one open-URL outcome.
func (m *Metrics) URLOpen(status string) {
	if m == nil {
		return
	}
	m.urlOpens.WithLabelValues(status).Inc()
}

// SettingsApplied counts one settings update applied on the device.
func (m *Metrics) SettingsApplied() {
	if m == nil {
		return
	}
	m.applied.Inc()
}
