package review

import (
	"log/slog"

	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/narration"
)

// Option configures Service.
type Option func(s *Service)

// WithDelay sets the delay policy.
func WithDelay(d *delay.Service) Option {
	return func(s *Service) {
		s.delay = d
	}
}

// WithDecider sets the correction decider.
func WithDecider(decider Decider) Option {
	return func(s *Service) {
		s.decider = decider
	}
}

// WithNarrator sets the event narrator.
func WithNarrator(narrator narration.Narrator) Option {
	return func(s *Service) {
		s.narrator = narrator
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
