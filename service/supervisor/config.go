package supervisor

import (
	"errors"
	"fmt"

	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/review"
	"github.com/viant/marking/service/worker"
)

const (
	// MinWorkers is the smallest supported worker count.
	MinWorkers = 2
	// DefaultTotalExams is the reference exam count.
	DefaultTotalExams = 20
	// DefaultSharedKey identifies the shared state region.
	DefaultSharedKey = 1234
	// DefaultLockKey identifies the lock set.
	DefaultLockKey = 1235
)

// Config represents supervisor configuration.
type Config struct {
	// Workers is the number of assistants, at least MinWorkers.
	Workers int
	// TotalExams bounds the exam sequence.
	TotalExams int
	// SharedKey and LockKey name the shared resources.
	SharedKey int
	LockKey   int
	// Unsynchronized replaces every lock with a no-op.
	Unsynchronized bool
	// MaxLoadFailures ends the run after that many consecutive failed exam loads; 0 retries forever.
	MaxLoadFailures int
	// Seed for per worker random sources; 0 seeds from the clock.
	Seed int64
	// CorrectionPercent is the chance a rubric entry gets corrected.
	CorrectionPercent int
	Delay             delay.Config
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Workers:           MinWorkers,
		TotalExams:        DefaultTotalExams,
		SharedKey:         DefaultSharedKey,
		LockKey:           DefaultLockKey,
		MaxLoadFailures:   worker.DefaultMaxLoadFailures,
		CorrectionPercent: int(review.DefaultChance),
		Delay:             delay.DefaultConfig(),
	}
}

// Validate checks configuration.
func (c Config) Validate() error {
	var errs []error
	if c.Workers < MinWorkers {
		errs = append(errs, fmt.Errorf("workers must be at least %d, got %d", MinWorkers, c.Workers))
	}
	if c.TotalExams < 1 {
		errs = append(errs, fmt.Errorf("totalExams must be positive, got %d", c.TotalExams))
	}
	if c.SharedKey == c.LockKey {
		errs = append(errs, fmt.Errorf("sharedKey and lockKey must differ, both %d", c.SharedKey))
	}
	if c.CorrectionPercent < 0 || c.CorrectionPercent > 100 {
		errs = append(errs, fmt.Errorf("correctionPercent must be within 0..100, got %d", c.CorrectionPercent))
	}
	if err := c.Delay.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
