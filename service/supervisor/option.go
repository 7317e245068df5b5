package supervisor

import (
	"log/slog"

	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/lock"
	"github.com/viant/marking/service/marking"
	"github.com/viant/marking/service/narration"
	"github.com/viant/marking/service/review"
)

// Option configures Service.
type Option func(s *Service)

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

// WithSleeper replaces the wall clock sleeper.
func WithSleeper(sleeper delay.Sleeper) Option {
	return func(s *Service) {
		s.sleeper = sleeper
	}
}

// WithDecider overrides the percent based correction decider.
func WithDecider(decider review.Decider) Option {
	return func(s *Service) {
		s.decider = decider
	}
}

// WithClaimHook installs a hook into every question claim.
func WithClaimHook(hook marking.ClaimHook) Option {
	return func(s *Service) {
		s.hook = hook
	}
}

// WithMonitor sets the lock monitor; by default each run creates one.
func WithMonitor(monitor *lock.Monitor) Option {
	return func(s *Service) {
		s.monitor = monitor
	}
}
