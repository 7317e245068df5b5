// Package delay simulates review and marking time. Production ranges come
// from configuration; tests inject a Sleeper that does not wait.
package delay

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Range is an inclusive duration range drawn uniformly.
type Range struct {
	Min time.Duration `json:"min" yaml:"min"`
	Max time.Duration `json:"max" yaml:"max"`
}

// Draw returns a duration within the range.
func (r Range) Draw(rng *rand.Rand) time.Duration {
	if r.Max <= r.Min || rng == nil {
		return r.Min
	}
	return r.Min + time.Duration(rng.Int63n(int64(r.Max-r.Min)+1))
}

// Validate checks range bounds.
func (r Range) Validate() error {
	if r.Min < 0 || r.Max < 0 {
		return fmt.Errorf("negative delay range: %v-%v", r.Min, r.Max)
	}
	if r.Max < r.Min {
		return fmt.Errorf("delay range max %v is below min %v", r.Max, r.Min)
	}
	return nil
}

// Config represents delay policy configuration.
type Config struct {
	// Think is the per rubric entry review delay.
	Think Range `json:"think" yaml:"think"`
	// Mark is the per question marking delay.
	Mark Range `json:"mark" yaml:"mark"`
	// MarkPace follows every marked question.
	MarkPace time.Duration `json:"markPace" yaml:"markPace"`
	// LoopPace follows every worker work iteration.
	LoopPace time.Duration `json:"loopPace" yaml:"loopPace"`
}

// DefaultConfig returns the reference delays.
func DefaultConfig() Config {
	return Config{
		Think:    Range{Min: 500 * time.Millisecond, Max: time.Second},
		Mark:     Range{Min: time.Second, Max: 2 * time.Second},
		MarkPace: 100 * time.Millisecond,
		LoopPace: 100 * time.Millisecond,
	}
}

// Validate returns the first invalid setting or nil.
func (c Config) Validate() error {
	if err := c.Think.Validate(); err != nil {
		return fmt.Errorf("think: %w", err)
	}
	if err := c.Mark.Validate(); err != nil {
		return fmt.Errorf("mark: %w", err)
	}
	if c.MarkPace < 0 || c.LoopPace < 0 {
		return fmt.Errorf("pacing delays must not be negative")
	}
	return nil
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the wall clock Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoSleep returns immediately; it still reports context cancellation.
func NoSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Service applies the delay policy. It holds no per worker state; callers
// pass their own random source.
type Service struct {
	config Config
	sleep  Sleeper
}

// Think sleeps for a review delay and returns it.
func (s *Service) Think(ctx context.Context, rng *rand.Rand) (time.Duration, error) {
	d := s.config.Think.Draw(rng)
	return d, s.sleep(ctx, d)
}

// Mark sleeps for a marking delay and returns it.
func (s *Service) Mark(ctx context.Context, rng *rand.Rand) (time.Duration, error) {
	d := s.config.Mark.Draw(rng)
	return d, s.sleep(ctx, d)
}

// MarkPace sleeps for the pacing delay after a marked question.
func (s *Service) MarkPace(ctx context.Context) error {
	return s.sleep(ctx, s.config.MarkPace)
}

// LoopPace sleeps for the pacing delay after a work iteration.
func (s *Service) LoopPace(ctx context.Context) error {
	return s.sleep(ctx, s.config.LoopPace)
}

// Config returns the delay configuration.
func (s *Service) Config() Config {
	return s.config
}

// New creates a delay service; a nil sleeper defaults to Sleep.
func New(config Config, sleeper Sleeper) *Service {
	if sleeper == nil {
		sleeper = Sleep
	}
	return &Service{config: config, sleep: sleeper}
}

// Instant returns a service that never waits, for tests.
func Instant() *Service {
	return New(Config{}, NoSleep)
}
