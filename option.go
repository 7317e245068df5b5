package marking

import (
	"io"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/marking/service/dao"
	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/messaging"
	"github.com/viant/marking/service/narration"
	"github.com/viant/marking/service/review"
	"github.com/viant/marking/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures Service.
type Option func(s *Service)

// WithConfig sets the run configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithOutput sets the writer receiving the narrated trace.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		s.output = w
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithFs sets the file system used for config, rubric and exam resources.
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithRubric replaces the file backed rubric resource.
func WithRubric(rubric dao.Rubric) Option {
	return func(s *Service) {
		s.rubric = rubric
	}
}

// WithExams replaces the file backed exam resources.
func WithExams(exams dao.Exam) Option {
	return func(s *Service) {
		s.exams = exams
	}
}

// WithSleeper replaces the wall clock sleeper, typically with delay.NoSleep.
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

// WithNarrator adds an event listener next to the trace writer.
func WithNarrator(narrator narration.Narrator) Option {
	return func(s *Service) {
		s.narrators = append(s.narrators, narrator)
	}
}

// WithQueue sets the narration event queue.
func WithQueue(queue messaging.Queue[narration.Event]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
// The first successful initialisation wins.
func WithTracingExporter(exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(Name, Version, exporter)
	}
}
