package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Page view metrics
var (
	// ViewsActive tracks mounted page views
	ViewsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_views_active",
			Help: "Number of mounted page views",
		},
	)

	// ViewsEvicted counts views unmounted by the stale sweep
	ViewsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_views_evicted_total",
			Help: "Page views unmounted because no event stream attached",
		},
	)

	// EventsDropped counts view events dropped on a full buffer
	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_events_dropped_total",
			Help: "View events dropped because the stream buffer was full",
		},
		[]string{"type"},
	)
)

// Navigation metrics
var (
	// NavigationsTotal tracks navigation requests by section and result (applied/missing_anchor)
	NavigationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_navigations_total",
			Help: "Navigation requests by section and result",
		},
		[]string{"section", "result"},
	)
)

// Clock metrics
var (
	// ClockTicksTotal tracks clock refreshes by result (ok/formatting_error)
	ClockTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_clock_ticks_total",
			Help: "Clock refreshes by result",
		},
		[]string{"result"},
	)
)
