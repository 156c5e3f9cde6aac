package ingest

import (
	"time"

	"github.com/okian/statsboard/pkg/logger"
)

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithLogger sets a custom logger for the runner.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRunID replaces the run id generator.
func WithRunID(gen func() string) Option {
	return func(r *Runner) {
		if gen != nil {
			r.runID = gen
		}
	}
}
