// Package marking implements the question marking algorithm. A worker claims
// one unmarked question at a time under the SHARED domain, marking it before
// doing the work so no other worker can pick it, then marks it with no lock
// held. Only the claim is serialised.
package marking

import (
	"context"
	"fmt"

	"github.com/viant/marking/model"
	"github.com/viant/marking/progress"
	"github.com/viant/marking/runtime/shared"
	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/lock"
	"github.com/viant/marking/service/narration"
)

// ClaimHook runs inside the claim step, between finding an unmarked question
// and flagging it. Tests use it to widen the claim window.
type ClaimHook func(ctx context.Context, worker, question int)

// Service marks questions of the current exam.
type Service struct {
	state    *shared.State
	locks    lock.Locker
	delay    *delay.Service
	narrator narration.Narrator
	ledger   *Ledger
	hook     ClaimHook
}

// Mark claims and marks questions until none remain, at most model.RubricSize
// attempts. It returns the number of questions this worker marked.
func (s *Service) Mark(ctx context.Context, ta *model.Assistant) (int, error) {
	studentID, active, err := s.currentStudent(ctx)
	if err != nil || !active {
		return 0, err
	}
	marked := 0
	for attempt := 0; attempt < model.RubricSize; attempt++ {
		claim, ok, err := s.claim(ctx, ta.ID)
		if err != nil {
			return marked, err
		}
		if !ok {
			if marked == 0 {
				s.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindNoQuestions, Worker: ta.ID, StudentID: studentID})
			}
			break
		}
		if marked == 0 {
			s.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindMarkingStart, Worker: ta.ID, StudentID: studentID})
		}
		question := claim.Question + 1
		s.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindMarking, Worker: ta.ID, Question: question, StudentID: claim.StudentID})
		if _, err := s.delay.Mark(ctx, ta.Rand); err != nil {
			return marked, err
		}
		marked++
		progress.UpdateCtx(ctx, progress.Delta{QuestionsMarked: 1})
		s.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindMarked, Worker: ta.ID, Question: question, StudentID: claim.StudentID})
		if err := s.delay.MarkPace(ctx); err != nil {
			return marked, err
		}
	}
	if marked > 0 {
		s.narrator.Narrate(ctx, &narration.Event{Kind: narration.KindMarkingDone, Worker: ta.ID, StudentID: studentID})
	}
	return marked, nil
}

// currentStudent captures the exam's student id; active is false once the
// run is finished or the sentinel exam is current.
func (s *Service) currentStudent(ctx context.Context) (studentID int, active bool, err error) {
	guard, err := s.locks.Acquire(ctx, lock.Shared)
	if err != nil {
		return 0, false, fmt.Errorf("failed to acquire shared lock: %w", err)
	}
	defer guard.Release()
	return s.state.StudentID, !s.state.Finished && !s.state.AtSentinel(), nil
}

// claim flags the first unmarked question of the current exam. The claim
// records the exam that was scanned. The sentinel exam and a finished run
// yield nothing to claim.
func (s *Service) claim(ctx context.Context, worker int) (*Claim, bool, error) {
	guard, err := s.locks.Acquire(ctx, lock.Shared)
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire shared lock: %w", err)
	}
	defer guard.Release()
	if s.state.Finished || s.state.AtSentinel() {
		return nil, false, nil
	}
	question := s.state.FirstUnmarked()
	if question < 0 {
		return nil, false, nil
	}
	claim := &Claim{ExamIndex: s.state.ExamIndex, StudentID: s.state.StudentID, Question: question, Worker: worker}
	if s.hook != nil {
		s.hook(ctx, worker, question)
	}
	s.state.Questions[question] = model.Marked
	claim.Seq = s.ledger.Record(*claim)
	progress.UpdateCtx(ctx, progress.Delta{QuestionsClaimed: 1})
	return claim, true, nil
}

// Ledger returns the claim ledger.
func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// New creates a marking service.
func New(state *shared.State, locks lock.Locker, options ...Option) *Service {
	ret := &Service{state: state, locks: locks}
	for _, opt := range options {
		opt(ret)
	}
	if ret.delay == nil {
		ret.delay = delay.New(delay.DefaultConfig(), nil)
	}
	if ret.narrator == nil {
		ret.narrator = narration.Discard{}
	}
	if ret.ledger == nil {
		ret.ledger = &Ledger{}
	}
	return ret
}
