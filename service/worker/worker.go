package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/viant/marking/model"
	"github.com/viant/marking/progress"
	"github.com/viant/marking/runtime/shared"
	"github.com/viant/marking/service/dao"
	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/lock"
	"github.com/viant/marking/service/marking"
	"github.com/viant/marking/service/narration"
	"github.com/viant/marking/service/review"
	"github.com/viant/marking/tracing"
)

// DefaultMaxLoadFailures is the default consecutive exam load failure limit.
const DefaultMaxLoadFailures = 3

// ErrExamLoad is returned by an unsynchronized worker that cannot load the next exam.
var ErrExamLoad = errors.New("worker: exam load failed")

// Worker is a single marking assistant.
type Worker struct {
	ta              *model.Assistant
	state           *shared.State
	locks           lock.Locker
	exams           dao.Exam
	review          *review.Service
	marking         *marking.Service
	delay           *delay.Service
	narrator        narration.Narrator
	logger          *slog.Logger
	maxLoadFailures int
	unsynchronized  bool
}

// ID returns the assistant id.
func (w *Worker) ID() int {
	return w.ta.ID
}

// Run loops until the run is finished, ctx is done or, for an
// unsynchronized worker, the next exam cannot be loaded.
func (w *Worker) Run(ctx context.Context) (err error) {
	ctx = lock.WithHolder(ctx, w.ta.ID)
	ctx, span := tracing.StartWorkerSpan(ctx, "worker.run", w.ta.ID)
	defer func() { tracing.EndSpan(span, err) }()
	defer progress.UpdateCtx(ctx, progress.Delta{WorkersExited: 1})

	for {
		decision, err := w.Step(ctx)
		if err != nil {
			return w.fail(ctx, err)
		}
		switch decision {
		case Exit:
			return nil
		case Advanced:
			continue
		case Retry:
			if err := w.delay.LoopPace(ctx); err != nil {
				return w.fail(ctx, err)
			}
			continue
		}
		proceed, err := w.recheck(ctx)
		if err != nil {
			return w.fail(ctx, err)
		}
		if !proceed {
			continue
		}
		if err := w.work(ctx); err != nil {
			return w.fail(ctx, err)
		}
	}
}

func (w *Worker) fail(ctx context.Context, err error) error {
	w.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindWorkerFailed, Worker: w.ta.ID, Error: err.Error()})
	return err
}

func (w *Worker) work(ctx context.Context) error {
	if _, err := w.review.Check(ctx, w.ta); err != nil {
		return fmt.Errorf("failed to review rubric: %w", err)
	}
	if _, err := w.marking.Mark(ctx, w.ta); err != nil {
		return fmt.Errorf("failed to mark questions: %w", err)
	}
	return w.delay.LoopPace(ctx)
}

// Step runs one termination and advancement check under the SHARED domain.
func (w *Worker) Step(ctx context.Context) (Decision, error) {
	guard, err := w.locks.Acquire(ctx, lock.Shared)
	if err != nil {
		return Exit, fmt.Errorf("failed to acquire shared lock: %w", err)
	}
	defer guard.Release()

	state := w.state
	if state.Finished {
		w.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindExit, Worker: w.ta.ID})
		return Exit, nil
	}
	if state.AtSentinel() {
		state.Finish(w.ta.ID)
		w.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindSentinel, Worker: w.ta.ID, StudentID: state.StudentID})
		return Exit, nil
	}
	if !state.AllMarked() {
		return Work, nil
	}
	next := state.ExamIndex + 1
	if next >= state.TotalExams {
		state.ExamIndex = next
		state.Finish(w.ta.ID)
		w.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindNoMoreExams, Worker: w.ta.ID})
		return Exit, nil
	}
	exam, err := w.loadExam(ctx, next)
	if err != nil {
		return w.loadFailed(ctx, next, err)
	}
	state.LoadExam(exam)
	progress.UpdateCtx(ctx, progress.Delta{ExamsLoaded: 1})
	w.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindExamLoaded, Worker: w.ta.ID, Exam: exam.Name, StudentID: exam.StudentID})
	return Advanced, nil
}

func (w *Worker) loadExam(ctx context.Context, index int) (exam *model.Exam, err error) {
	ctx, span := tracing.StartWorkerSpan(ctx, "exam.load", w.ta.ID)
	span.WithInt("exam.index", index)
	defer func() { tracing.EndSpan(span, err) }()
	return w.exams.Load(ctx, index)
}

// loadFailed runs with SHARED held.
func (w *Worker) loadFailed(ctx context.Context, index int, err error) (Decision, error) {
	state := w.state
	state.LoadFailures++
	progress.UpdateCtx(ctx, progress.Delta{LoadFailures: 1})
	name := model.ExamName(index)
	w.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindExamLoadFailed, Worker: w.ta.ID, Exam: name, Error: err.Error()})
	w.logger.Error("failed to load exam", "worker", w.ta.ID, "exam", name, "failures", state.LoadFailures, "error", err)
	if w.unsynchronized {
		state.ExamIndex = index
		return Exit, fmt.Errorf("%w: %w", ErrExamLoad, err)
	}
	if w.maxLoadFailures > 0 && state.LoadFailures >= w.maxLoadFailures {
		state.Finish(w.ta.ID)
		w.logger.Warn("giving up on exam sequence", "worker", w.ta.ID, "exam", name, "failures", state.LoadFailures)
		return Exit, nil
	}
	return Retry, nil
}

// recheck briefly reacquires SHARED to skip work when another worker latched
// termination after the step released the domain.
func (w *Worker) recheck(ctx context.Context) (bool, error) {
	guard, err := w.locks.Acquire(ctx, lock.Shared)
	if err != nil {
		return false, fmt.Errorf("failed to acquire shared lock: %w", err)
	}
	defer guard.Release()
	return !w.state.Finished && !w.state.AtSentinel(), nil
}

// New creates a worker for ta.
func New(ta *model.Assistant, state *shared.State, locks lock.Locker, exams dao.Exam, reviewer *review.Service, marker *marking.Service, options ...Option) *Worker {
	ret := &Worker{
		ta:              ta,
		state:           state,
		locks:           locks,
		exams:           exams,
		review:          reviewer,
		marking:         marker,
		maxLoadFailures: DefaultMaxLoadFailures,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.delay == nil {
		ret.delay = delay.New(delay.DefaultConfig(), nil)
	}
	if ret.narrator == nil {
		ret.narrator = narration.Discard{}
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}
