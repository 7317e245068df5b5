// Package supervisor sets up a marking run, spawns the workers, waits for
// all of them and releases shared resources whatever the outcome.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/viant/marking/internal/clock"
	"github.com/viant/marking/internal/idgen"
	"github.com/viant/marking/model"
	"github.com/viant/marking/progress"
	"github.com/viant/marking/runtime/shared"
	"github.com/viant/marking/service/dao"
	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/lock"
	"github.com/viant/marking/service/marking"
	"github.com/viant/marking/service/narration"
	"github.com/viant/marking/service/review"
	"github.com/viant/marking/service/worker"
	"github.com/viant/marking/tracing"
)

// ErrSetup is returned when the run cannot start; no worker has been spawned.
var ErrSetup = errors.New("supervisor: setup failed")

// LockSets is the process-wide namespace of lock sets.
var LockSets = shared.NewRegistry[lock.Set]()

// Service runs marking sessions.
type Service struct {
	config   Config
	rubric   dao.Rubric
	exams    dao.Exam
	narrator narration.Narrator
	logger   *slog.Logger
	sleeper  delay.Sleeper
	decider  review.Decider
	hook     marking.ClaimHook
	monitor  *lock.Monitor
}

type session struct {
	state   *shared.State
	locks   lock.Set
	monitor *lock.Monitor
	ledger  *marking.Ledger
	initial []string
}

// Run executes one marking session and returns its report. Worker failures
// are reported, not returned.
func (s *Service) Run(ctx context.Context) (report *Report, err error) {
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid supervisor config: %w", err)
	}
	runID := idgen.New()
	ctx, tracker := progress.WithNewTracker(ctx, runID, nil)
	ctx, span := tracing.StartSpan(ctx, "supervisor.run", tracing.KindInternal)
	span.WithAttributes(map[string]string{"run.id": runID})
	span.WithInt("run.workers", s.config.Workers)
	defer func() { tracing.EndSpan(span, err) }()

	report = &Report{
		RunID:          runID,
		Workers:        s.config.Workers,
		Unsynchronized: s.config.Unsynchronized,
		StartedAt:      clock.Now(),
		WorkerErrors:   map[int]error{},
	}
	s.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindStart, Workers: s.config.Workers, Baseline: s.config.Unsynchronized})
	if err = s.run(ctx, report); err != nil {
		return nil, err
	}
	report.Progress = tracker.Snapshot()
	report.Corrections = report.Progress.Corrections
	report.Elapsed = clock.Since(report.StartedAt)
	s.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindComplete})
	return report, nil
}

func (s *Service) run(ctx context.Context, report *Report) error {
	sess, err := s.open()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSetup, err)
	}
	defer s.release()

	if err := s.setup(ctx, sess); err != nil {
		return fmt.Errorf("%w: %w", ErrSetup, err)
	}
	errs := s.spawn(ctx, sess)
	for i, wErr := range errs {
		if wErr != nil {
			report.WorkerErrors[i+1] = wErr
		}
	}

	state := sess.state
	report.FinishedBy = state.FinishedBy
	report.ExamIndex = state.ExamIndex
	report.InitialRubric = sess.initial
	report.FinalRubric = state.Rubric.Lines()
	report.addClaims(sess.ledger)
	report.addLocks(sess.monitor)
	if report.RubricDiff, report.DiffStats, err = RubricDiff(report.InitialRubric, report.FinalRubric, "rubric"); err != nil {
		s.logger.Warn("failed to diff rubric", "error", err)
	}
	return nil
}

// open creates the shared state and lock set, rebuilding stale ones left under the same keys.
func (s *Service) open() (*session, error) {
	monitor := s.monitor
	if monitor == nil {
		monitor = lock.NewMonitor()
	}
	state, created, err := shared.States.Open(s.config.SharedKey, func() (*shared.State, error) {
		return shared.New(s.config.TotalExams), nil
	})
	if err != nil {
		return nil, err
	}
	if !created {
		s.logger.Warn("reinitializing existing shared state", "key", s.config.SharedKey)
		*state = *shared.New(s.config.TotalExams)
	}
	if _, ok := LockSets.Get(s.config.LockKey); ok {
		s.logger.Warn("replacing existing lock set", "key", s.config.LockKey)
		_ = LockSets.Destroy(s.config.LockKey, lock.Set.Close)
	}
	locks, _, err := LockSets.Open(s.config.LockKey, func() (lock.Set, error) {
		if s.config.Unsynchronized {
			return lock.NewNop(monitor), nil
		}
		return lock.New(lock.WithMonitor(monitor)), nil
	})
	if err != nil {
		_ = shared.States.Destroy(s.config.SharedKey, nil)
		return nil, err
	}
	return &session{state: state, locks: locks, monitor: monitor, ledger: &marking.Ledger{}}, nil
}

func (s *Service) release() {
	if err := LockSets.Destroy(s.config.LockKey, lock.Set.Close); err != nil {
		s.logger.Warn("failed to destroy lock set", "key", s.config.LockKey, "error", err)
	}
	if err := shared.States.Destroy(s.config.SharedKey, nil); err != nil {
		s.logger.Warn("failed to destroy shared state", "key", s.config.SharedKey, "error", err)
	}
}

// setup loads the rubric and the first exam before any worker exists.
func (s *Service) setup(ctx context.Context, sess *session) error {
	lines, err := s.rubric.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rubric: %w", err)
	}
	sess.state.LoadRubric(lines)
	sess.initial = sess.state.Rubric.Lines()

	exam, err := s.exams.Load(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to load first exam: %w", err)
	}
	sess.state.LoadExam(exam)
	progress.UpdateCtx(ctx, progress.Delta{ExamsLoaded: 1})
	s.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindExamLoaded, Exam: exam.Name, StudentID: exam.StudentID})
	return nil
}

func (s *Service) spawn(ctx context.Context, sess *session) []error {
	delays := delay.New(s.config.Delay, s.sleeper)
	decider := s.decider
	if decider == nil {
		decider = review.Chance(s.config.CorrectionPercent)
	}
	reviewer := review.New(sess.state, sess.locks, s.rubric,
		review.WithDelay(delays),
		review.WithDecider(decider),
		review.WithNarrator(s.narrator),
		review.WithLogger(s.logger))
	marker := marking.New(sess.state, sess.locks,
		marking.WithDelay(delays),
		marking.WithNarrator(s.narrator),
		marking.WithLedger(sess.ledger),
		marking.WithClaimHook(s.hook))

	seed := s.config.Seed
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	errs := make([]error, s.config.Workers)
	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		w := worker.New(model.NewAssistant(i+1, seed), sess.state, sess.locks, s.exams, reviewer, marker,
			worker.WithDelay(delays),
			worker.WithNarrator(s.narrator),
			worker.WithLogger(s.logger),
			worker.WithMaxLoadFailures(s.config.MaxLoadFailures),
			worker.WithUnsynchronized(s.config.Unsynchronized))
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := w.Run(ctx); err != nil {
				s.logger.Error("worker stopped", "worker", w.ID(), "error", err)
				errs[i] = err
			}
		}(i)
	}
	wg.Wait()
	return errs
}

// New creates a supervisor.
func New(config Config, rubric dao.Rubric, exams dao.Exam, options ...Option) *Service {
	ret := &Service{config: config, rubric: rubric, exams: exams}
	for _, opt := range options {
		opt(ret)
	}
	if ret.narrator == nil {
		ret.narrator = narration.Discard{}
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}
