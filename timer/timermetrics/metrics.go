// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package timermetrics instruments timers with prometheus metrics.

Metrics are driven entirely by timer events, so any timer can be instrumented
by adding the Listener:

	m := timermetrics.New(timermetrics.Config{Namespace: "app"})
	f := timer.NewFactory(timer.WithListeners(m.Listener()))
*/
package timermetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/xmidt-org/timeaux/timer"
)

const (
	// TimerLabel is the label holding a timer's name
	TimerLabel = "timer"

	// EventLabel is the label holding the EventType of a lifecycle event
	EventLabel = "event"
)

// DefaultBuckets are the histogram buckets, in seconds, used for handler durations
// when none are configured.
var DefaultBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// Config describes how timer metrics are created and registered
type Config struct {
	// Registerer is where metrics are registered.  If unset, prometheus.DefaultRegisterer is used.
	Registerer prometheus.Registerer

	// Namespace is the optional prometheus namespace of every metric
	Namespace string

	// Subsystem is the optional prometheus subsystem of every metric.  If unset,
	// "timer" is used.
	Subsystem string

	// Buckets are the handler duration histogram buckets.  If unset, DefaultBuckets is used.
	Buckets []float64
}

// Metrics holds the prometheus collectors for a set of timers.
type Metrics struct {
	events   *prometheus.CounterVec
	ticks    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	armed    *prometheus.GaugeVec
}

// New creates and registers timer metrics.  Like promauto, this function panics
// if registration fails, e.g. because the metrics were already registered.
func New(cfg Config) *Metrics {
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}

	if len(cfg.Subsystem) == 0 {
		cfg.Subsystem = "timer"
	}

	if len(cfg.Buckets) == 0 {
		cfg.Buckets = DefaultBuckets
	}

	factory := promauto.With(cfg.Registerer)
	return &Metrics{
		events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "events_total",
				Help:      "The number of timer lifecycle events, such as arming and disposal",
			},
			[]string{TimerLabel, EventLabel},
		),
		ticks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ticks_total",
				Help:      "The number of handler invocations, including those that panicked",
			},
			[]string{TimerLabel},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "handler_duration_seconds",
				Help:      "How long each handler invocation took",
				Buckets:   cfg.Buckets,
			},
			[]string{TimerLabel},
		),
		armed: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "armed",
				Help:      "Whether a timer is currently armed (1) or not (0)",
			},
			[]string{TimerLabel},
		),
	}
}

// Listener returns a timer.Listener that records events into these metrics.
func (m *Metrics) Listener() timer.Listener {
	return m.on
}

func (m *Metrics) on(e timer.Event) {
	switch e.Type {
	case timer.EventTick, timer.EventPanic:
		m.ticks.WithLabelValues(e.Name).Inc()
		m.duration.WithLabelValues(e.Name).Observe(e.Duration.Seconds())

	case timer.EventArmed:
		m.armed.WithLabelValues(e.Name).Set(1)

	case timer.EventDisarmed, timer.EventDisposed:
		m.armed.WithLabelValues(e.Name).Set(0)
	}

	// ticks are frequent and are already counted by ticks_total
	if e.Type != timer.EventTick {
		m.events.WithLabelValues(e.Name, e.Type.String()).Inc()
	}
}
