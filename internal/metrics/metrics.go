package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reword_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "route", "status"})

	// RewriteDuration tracks upstream model latency per adapter and outcome.
	RewriteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reword_rewrite_duration_seconds",
		Help:    "Time spent waiting on the model provider.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"adapter", "outcome"})

	// InputChars tracks the distribution of forwarded text lengths.
	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reword_input_chars",
		Help:    "Number of characters forwarded to the model after clamping.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 12000},
	})

	// ClampedTotal counts inputs truncated to the maximum length.
	ClampedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reword_clamped_total",
		Help: "Rewrite inputs silently truncated to the maximum length.",
	})

	// AdapterAvailable tracks whether the model adapter is usable.
	AdapterAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "reword_adapter_available",
		Help: "Whether the model adapter is available (1) or not (0).",
	}, []string{"adapter"})
)

// Rewrite outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeEmpty = "empty"
)
