package assistant

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ManojS35/data-scribe-agent/logger"
)

// ============================================================================
// ASSISTANT OPTIONS
// ============================================================================

// DefaultDelay is the simulated processing latency.
const DefaultDelay = 1500 * time.Millisecond

// Option configures an Assistant.
type Option func(*options)

type options struct {
	delay   time.Duration
	log     logrus.FieldLogger
	metrics bool
}

// WithDelay sets the simulated processing latency; 0 answers immediately.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.delay = d
		}
	}
}

// WithLogger sets the logger used for per-question records.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithMetrics turns Prometheus instrumentation on or off.
func WithMetrics(enabled bool) Option {
	return func(o *options) {
		o.metrics = enabled
	}
}

func applyOptions(opts []Option) options {
	o := options{
		delay:   DefaultDelay,
		log:     logger.Discard(),
		metrics: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
