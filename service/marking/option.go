package marking

import (
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

// WithNarrator sets the event narrator.
func WithNarrator(narrator narration.Narrator) Option {
	return func(s *Service) {
		s.narrator = narrator
	}
}

// WithLedger shares a claim ledger.
func WithLedger(ledger *Ledger) Option {
	return func(s *Service) {
		s.ledger = ledger
	}
}

// WithClaimHook sets a hook run inside the claim step.
func WithClaimHook(hook ClaimHook) Option {
	return func(s *Service) {
		s.hook = hook
	}
}
