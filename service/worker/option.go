package worker

import (
	"log/slog"

	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/narration"
)

// Option configures Worker.
type Option func(w *Worker)

// WithDelay sets the delay policy used for loop pacing.
func WithDelay(d *delay.Service) Option {
	return func(w *Worker) {
		w.delay = d
	}
}

// WithNarrator sets the event narrator.
func WithNarrator(narrator narration.Narrator) Option {
	return func(w *Worker) {
		w.narrator = narrator
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// WithMaxLoadFailures sets the number of consecutive failed exam loads after
// which the run is finished. Zero or less never gives up.
func WithMaxLoadFailures(max int) Option {
	return func(w *Worker) {
		w.maxLoadFailures = max
	}
}

// WithUnsynchronized makes a failed exam load fatal to this worker, as in
// the baseline variant.
func WithUnsynchronized(flag bool) Option {
	return func(w *Worker) {
		w.unsynchronized = flag
	}
}
