// Package metrics holds the Prometheus collectors of the assistant.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// QueriesTotal counts answered questions by category and routing path.
	QueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "datascribe",
		Subsystem: "assistant",
		Name:      "queries_total",
		Help:      "Total number of questions answered, labeled by category and classification route.",
	}, []string{"category", "route"})

	// ProcessingDurationSeconds is the time to build a bundle, artificial delay included.
	ProcessingDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "datascribe",
		Subsystem: "assistant",
		Name:      "processing_duration_seconds",
		Help:      "Time to answer a question, including the simulated processing delay.",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 1.5, 2, 5},
	}, []string{"category"})

	// FailuresTotal counts questions that could not be answered.
	FailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "datascribe",
		Subsystem: "assistant",
		Name:      "failures_total",
		Help:      "Total number of questions whose processing failed.",
	})

	// RateLimitedTotal counts HTTP requests rejected by the rate limiter.
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "datascribe",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Total number of HTTP requests rejected by the per-client rate limiter.",
	})
)

// Register registers the collectors with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			QueriesTotal,
			ProcessingDurationSeconds,
			FailuresTotal,
			RateLimitedTotal,
		)
	})
}
