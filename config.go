package marking

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/viant/afs"
	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/supervisor"
	"github.com/viant/marking/service/worker"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUsage is returned for a malformed command line.
	ErrUsage = errors.New("usage: marking [-config file] <number_of_TAs>")
	// ErrInvalidWorkers is returned for a worker count below supervisor.MinWorkers.
	ErrInvalidWorkers = errors.New("number of TAs must be at least 2")
)

// Config is a serialisable representation of a marking run. Fields omitted
// from a YAML document keep their DefaultConfig values.
type Config struct {
	Workers           int          `json:"workers" yaml:"workers"`
	RubricURL         string       `json:"rubricURL" yaml:"rubricURL"`
	ExamBaseURL       string       `json:"examBaseURL" yaml:"examBaseURL"`
	TotalExams        int          `json:"totalExams" yaml:"totalExams"`
	CorrectionPercent int          `json:"correctionPercent" yaml:"correctionPercent"`
	Delay             delay.Config `json:"delay" yaml:"delay"`
	Seed              int64        `json:"seed" yaml:"seed"`
	Unsynchronized    bool         `json:"unsynchronized" yaml:"unsynchronized"`
	MaxLoadFailures   int          `json:"maxLoadFailures" yaml:"maxLoadFailures"`
	// TraceFile enables OpenTelemetry span export to a file when set.
	TraceFile string `json:"traceFile" yaml:"traceFile"`
	SharedKey int    `json:"sharedKey" yaml:"sharedKey"`
	LockKey   int    `json:"lockKey" yaml:"lockKey"`
}

// DefaultConfig returns the reference configuration; Workers still has to be set.
func DefaultConfig() *Config {
	defaults := supervisor.DefaultConfig()
	return &Config{
		RubricURL:         "rubric.txt",
		ExamBaseURL:       ".",
		TotalExams:        defaults.TotalExams,
		CorrectionPercent: defaults.CorrectionPercent,
		Delay:             defaults.Delay,
		MaxLoadFailures:   worker.DefaultMaxLoadFailures,
		SharedKey:         defaults.SharedKey,
		LockKey:           defaults.LockKey,
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config was nil")
	}
	var errs []error
	if c.Workers < supervisor.MinWorkers {
		errs = append(errs, fmt.Errorf("%w, got %d", ErrInvalidWorkers, c.Workers))
	}
	if c.RubricURL == "" {
		errs = append(errs, fmt.Errorf("rubricURL was empty"))
	}
	if c.ExamBaseURL == "" {
		errs = append(errs, fmt.Errorf("examBaseURL was empty"))
	}
	if err := c.Supervisor().Validate(); err != nil && c.Workers >= supervisor.MinWorkers {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Supervisor returns the supervisor configuration.
func (c *Config) Supervisor() supervisor.Config {
	return supervisor.Config{
		Workers:           c.Workers,
		TotalExams:        c.TotalExams,
		SharedKey:         c.SharedKey,
		LockKey:           c.LockKey,
		Unsynchronized:    c.Unsynchronized,
		MaxLoadFailures:   c.MaxLoadFailures,
		Seed:              c.Seed,
		CorrectionPercent: c.CorrectionPercent,
		Delay:             c.Delay,
	}
}

// LoadConfig decodes a YAML config from URL on top of DefaultConfig.
func LoadConfig(ctx context.Context, URL string, fs afs.Service) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download config %s: %w", URL, err)
	}
	ret := DefaultConfig()
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	return ret, nil
}

// ParseWorkers parses the worker count argument.
func ParseWorkers(args []string) (int, error) {
	if len(args) != 1 {
		return 0, ErrUsage
	}
	workers, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number of TAs %q", ErrUsage, args[0])
	}
	if workers < supervisor.MinWorkers {
		return 0, ErrInvalidWorkers
	}
	return workers, nil
}
