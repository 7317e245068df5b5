package marking

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/marking/service/dao"
	examfs "github.com/viant/marking/service/dao/exam/fs"
	rubricfs "github.com/viant/marking/service/dao/rubric/fs"
	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/messaging"
	"github.com/viant/marking/service/narration"
	"github.com/viant/marking/service/review"
	"github.com/viant/marking/service/supervisor"
	"github.com/viant/marking/tracing"
)

const (
	// Name identifies the service in traces.
	Name = "marking"
	// Version of the service reported in traces.
	Version = "0.1.0"
)

// Service is the marking facade.
type Service struct {
	config    *Config
	fs        afs.Service
	output    io.Writer
	logger    *slog.Logger
	rubric    dao.Rubric
	exams     dao.Exam
	sleeper   delay.Sleeper
	decider   review.Decider
	narrators []narration.Narrator
	queue     messaging.Queue[narration.Event]
}

// Config returns the run configuration.
func (s *Service) Config() *Config {
	return s.config
}

// Run executes a marking session, writing the narrated trace to the output.
func (s *Service) Run(ctx context.Context) (*supervisor.Report, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.config.TraceFile != "" {
		if err := tracing.Init(Name, Version, s.config.TraceFile); err != nil {
			return nil, fmt.Errorf("failed to init tracing: %w", err)
		}
		defer func() {
			if err := tracing.Shutdown(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("failed to shutdown tracing", "error", err)
			}
		}()
	}
	rubric, exams, err := s.resources()
	if err != nil {
		return nil, err
	}

	var narrationOptions []narration.Option
	narrationOptions = append(narrationOptions, narration.WithLogger(s.logger))
	if s.queue != nil {
		narrationOptions = append(narrationOptions, narration.WithQueue(s.queue))
	}
	trace := narration.New(s.output, narrationOptions...)
	trace.Start()
	narrator := append(narration.Tee{trace}, s.narrators...)

	options := []supervisor.Option{
		supervisor.WithNarrator(narrator),
		supervisor.WithLogger(s.logger),
	}
	if s.sleeper != nil {
		options = append(options, supervisor.WithSleeper(s.sleeper))
	}
	if s.decider != nil {
		options = append(options, supervisor.WithDecider(s.decider))
	}
	report, err := supervisor.New(s.config.Supervisor(), rubric, exams, options...).Run(ctx)
	if cErr := trace.Close(); cErr != nil {
		s.logger.Warn("failed to close narration", "error", cErr)
	}
	if err != nil {
		return nil, err
	}
	for id, wErr := range report.WorkerErrors {
		s.logger.Warn("worker failed", "worker", id, "error", wErr)
	}
	return report, nil
}

func (s *Service) resources() (dao.Rubric, dao.Exam, error) {
	rubric, exams := s.rubric, s.exams
	var err error
	if rubric == nil {
		if rubric, err = rubricfs.New(s.config.RubricURL, s.fs); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", supervisor.ErrSetup, err)
		}
	}
	if exams == nil {
		if exams, err = examfs.New(s.config.ExamBaseURL, s.fs); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", supervisor.ErrSetup, err)
		}
	}
	return rubric, exams, nil
}

// New creates a marking service.
func New(options ...Option) *Service {
	ret := &Service{}
	for _, opt := range options {
		opt(ret)
	}
	if ret.config == nil {
		ret.config = DefaultConfig()
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}
