// Package review implements the rubric review algorithm: a worker visits
// every rubric entry, thinks without holding any lock and, on a weighted coin
// flip, corrects the entry's target character. The in-memory edit and the
// rewrite of the rubric resource form a single RUBRIC critical section.
package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/marking/model"
	"github.com/viant/marking/progress"
	"github.com/viant/marking/runtime/shared"
	"github.com/viant/marking/service/dao"
	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/lock"
	"github.com/viant/marking/service/narration"
	"github.com/viant/marking/tracing"
)

// Service reviews the shared rubric.
type Service struct {
	state    *shared.State
	locks    lock.Locker
	rubric   dao.Rubric
	delay    *delay.Service
	decider  Decider
	narrator narration.Narrator
	logger   *slog.Logger
}

// Correction describes an applied correction.
type Correction struct {
	Question int
	From, To byte
}

// Check reviews every rubric entry in index order and returns applied corrections.
// It stops early once the run is finished or the sentinel exam is current.
func (s *Service) Check(ctx context.Context, ta *model.Assistant) ([]Correction, error) {
	s.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindRubricCheck, Worker: ta.ID})
	var corrections []Correction
	for i := 0; i < model.RubricSize; i++ {
		think, err := s.delay.Think(ctx, ta.Rand)
		if err != nil {
			return corrections, err
		}
		active, err := s.active(ctx)
		if err != nil {
			return corrections, err
		}
		if !active {
			return corrections, nil
		}
		progress.UpdateCtx(ctx, progress.Delta{Reviews: 1})
		if !s.decider.NeedsCorrection(ta.Rand, i) {
			s.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindNoCorrection, Worker: ta.ID, Question: i + 1, Think: think})
			continue
		}
		correction, ok, err := s.correct(ctx, ta.ID, i)
		if err != nil {
			return corrections, err
		}
		if !ok {
			continue
		}
		corrections = append(corrections, *correction)
		progress.UpdateCtx(ctx, progress.Delta{Corrections: 1})
		s.narrator.Narrate(ctx, &narration.Event{
			Kind:     narration.KindCorrection,
			Worker:   ta.ID,
			Question: i + 1,
			Think:    think,
			From:     correction.From,
			To:       correction.To,
		})
	}
	return corrections, nil
}

// active reports, under its own SHARED section, whether the run still has a
// real exam to review. It is never taken while RUBRIC is held.
func (s *Service) active(ctx context.Context) (bool, error) {
	guard, err := s.locks.Acquire(ctx, lock.Shared)
	if err != nil {
		return false, fmt.Errorf("failed to acquire shared lock: %w", err)
	}
	defer guard.Release()
	return !s.state.Finished && !s.state.AtSentinel(), nil
}

// correct edits entry i and persists the rubric under the RUBRIC domain.
// ok is false when the entry has no correction target.
func (s *Service) correct(ctx context.Context, worker, i int) (_ *Correction, ok bool, err error) {
	ctx, span := tracing.StartWorkerSpan(ctx, "rubric.correct", worker)
	span.WithInt("rubric.question", i+1)
	defer func() { tracing.EndSpan(span, err) }()

	guard, err := s.locks.Acquire(ctx, lock.Rubric)
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire rubric lock: %w", err)
	}
	defer guard.Release()

	updated, from, to, ok := model.Correct(s.state.Rubric[i])
	if !ok {
		return nil, false, nil
	}
	s.state.Rubric[i] = updated
	if sErr := s.rubric.Save(ctx, s.state.Rubric.Lines()); sErr != nil {
		s.logger.Error("failed to save rubric", "worker", worker, "question", i+1, "error", sErr)
	}
	return &Correction{Question: i + 1, From: from, To: to}, true, nil
}

// New creates a review service.
func New(state *shared.State, locks lock.Locker, rubric dao.Rubric, options ...Option) *Service {
	ret := &Service{state: state, locks: locks, rubric: rubric}
	for _, opt := range options {
		opt(ret)
	}
	if ret.delay == nil {
		ret.delay = delay.New(delay.DefaultConfig(), nil)
	}
	if ret.decider == nil {
		ret.decider = DefaultChance
	}
	if ret.narrator == nil {
		ret.narrator = narration.Discard{}
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}
