// Package assistant answers business questions: it classifies the text,
// fetches the matching bundle from the catalog and returns it after a
// simulated processing delay.
package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ManojS35/data-scribe-agent/catalog"
	"github.com/ManojS35/data-scribe-agent/classifier"
	"github.com/ManojS35/data-scribe-agent/metrics"
	"github.com/ManojS35/data-scribe-agent/response"
)

// ErrProcessingFailed is returned when a bundle could not be produced.
// Details are logged, never returned.
var ErrProcessingFailed = errors.New("processing failed")

// Welcome is the assistant's opening message.
const Welcome = "Hello! I'm your DataScribe Assistant. Ask me any business question about your data, " +
	"and I'll analyze it for you. You can ask about sales trends, profit margins, department performance, " +
	"product profitability, customer acquisition, or regional performance with advanced insights."

// Source supplies prepared bundles by category. *catalog.Catalog is the
// production implementation.
type Source interface {
	Lookup(key catalog.Category) (response.Bundle, bool)
}

// Assistant answers questions against a Source.
type Assistant struct {
	src  Source
	opts options
}

// New returns an assistant over src.
func New(src Source, opts ...Option) *Assistant {
	return &Assistant{src: src, opts: applyOptions(opts)}
}

// Answer is a bundle together with the classification that chose it.
type Answer struct {
	Decision classifier.Decision
	Bundle   response.Bundle
}

// Process answers text. Every input, including the empty string, yields a
// bundle. The error is ctx.Err() when ctx ends during the simulated delay
// and ErrProcessingFailed when assembly fails.
func (a *Assistant) Process(ctx context.Context, text string) (*response.Bundle, error) {
	ans, err := a.Answer(ctx, text)
	if err != nil {
		return nil, err
	}
	return &ans.Bundle, nil
}

// Answer is Process that also reports the classification decision.
func (a *Assistant) Answer(ctx context.Context, text string) (*Answer, error) {
	start := time.Now()

	if err := a.wait(ctx); err != nil {
		a.opts.log.WithError(err).Debug("question abandoned during processing delay")
		return nil, err
	}

	decision := classifier.Classify(text)
	log := a.opts.log.WithFields(logrus.Fields{
		"category": decision.Category,
		"route":    decision.Route,
		"rule":     decision.Rule,
	})

	bundle, err := a.assemble(decision, log)
	elapsed := time.Since(start)
	if err != nil {
		if a.opts.metrics {
			metrics.FailuresTotal.Inc()
		}
		return nil, err
	}

	if a.opts.metrics {
		metrics.QueriesTotal.WithLabelValues(string(decision.Category), string(decision.Route)).Inc()
		metrics.ProcessingDurationSeconds.WithLabelValues(string(decision.Category)).Observe(elapsed.Seconds())
	}
	log.WithField("elapsed", elapsed.Round(time.Millisecond)).Info("question answered")
	return &Answer{Decision: decision, Bundle: bundle}, nil
}

func (a *Assistant) wait(ctx context.Context) error {
	if a.opts.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(a.opts.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// assemble fetches the bundle for d. A panic in the source is logged and
// reported as ErrProcessingFailed.
func (a *Assistant) assemble(d classifier.Decision, log logrus.FieldLogger) (b response.Bundle, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("bundle generation panicked")
			b, err = response.Bundle{}, ErrProcessingFailed
		}
	}()

	if a.src == nil {
		log.Error("no bundle source configured")
		return response.Bundle{}, ErrProcessingFailed
	}
	b, ok := a.src.Lookup(d.Category)
	if !ok {
		log.Warn("category missing from catalog, using general overview")
		b, ok = a.src.Lookup(catalog.GeneralOverview)
	}
	if !ok {
		log.Error("general overview unavailable")
		return response.Bundle{}, ErrProcessingFailed
	}
	return b, nil
}
