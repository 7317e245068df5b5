package narration

import (
	"fmt"
	"time"
)

// Kind identifies a narrated event.
type Kind string

const (
	KindStart          Kind = "start"
	KindComplete       Kind = "complete"
	KindExamLoaded     Kind = "examLoaded"
	KindExamLoadFailed Kind = "examLoadFailed"
	KindRubricCheck    Kind = "rubricCheck"
	KindCorrection     Kind = "correction"
	KindNoCorrection   Kind = "noCorrection"
	KindMarkingStart   Kind = "markingStart"
	KindMarking        Kind = "marking"
	KindMarked         Kind = "marked"
	KindNoQuestions    Kind = "noQuestions"
	KindMarkingDone    Kind = "markingDone"
	KindSentinel       Kind = "sentinel"
	KindNoMoreExams    Kind = "noMoreExams"
	KindExit           Kind = "exit"
	KindWorkerFailed   Kind = "workerFailed"
)

// Event is a single narrated decision or progress step.
type Event struct {
	Kind      Kind          `json:"kind"`
	Worker    int           `json:"worker,omitempty"`
	Question  int           `json:"question,omitempty"`
	StudentID int           `json:"studentId,omitempty"`
	Exam      string        `json:"exam,omitempty"`
	Think     time.Duration `json:"think,omitempty"`
	From      byte          `json:"from,omitempty"`
	To        byte          `json:"to,omitempty"`
	Workers   int           `json:"workers,omitempty"`
	Baseline  bool          `json:"baseline,omitempty"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// String renders the event as one trace line. Question is 1-based.
func (e *Event) String() string {
	switch e.Kind {
	case KindStart:
		if e.Baseline {
			return fmt.Sprintf("Starting marking system with %d TAs (unsynchronized, race conditions expected)", e.Workers)
		}
		return fmt.Sprintf("Starting synchronized marking system with %d TAs", e.Workers)
	case KindComplete:
		return "All TAs have finished marking. Program completed."
	case KindExamLoaded:
		return fmt.Sprintf("TA loaded exam: %s (Student ID: %d)", e.Exam, e.StudentID)
	case KindExamLoadFailed:
		return fmt.Sprintf("TA %d: Failed to open exam file %s: %s", e.Worker, e.Exam, e.Error)
	case KindRubricCheck:
		return fmt.Sprintf("TA %d: Checking rubric...", e.Worker)
	case KindCorrection:
		return fmt.Sprintf("TA %d: thinks for %.1fs on Q%d → Corrects: %c→%c", e.Worker, e.Think.Seconds(), e.Question, e.From, e.To)
	case KindNoCorrection:
		return fmt.Sprintf("TA %d: thinks for %.1fs on Q%d → No Correction Needed", e.Worker, e.Think.Seconds(), e.Question)
	case KindMarkingStart:
		return fmt.Sprintf("TA %d: Starting to mark exam for student %d", e.Worker, e.StudentID)
	case KindMarking:
		return fmt.Sprintf("TA %d: Marking question %d for student %d", e.Worker, e.Question, e.StudentID)
	case KindMarked:
		return fmt.Sprintf("TA %d: Finished marking question %d for student %d", e.Worker, e.Question, e.StudentID)
	case KindNoQuestions:
		return fmt.Sprintf("TA %d: No questions available to mark for student %d", e.Worker, e.StudentID)
	case KindMarkingDone:
		return fmt.Sprintf("TA %d: Completed marking questions for student %d", e.Worker, e.StudentID)
	case KindSentinel:
		return fmt.Sprintf("TA %d: Found termination exam (%d)", e.Worker, e.StudentID)
	case KindNoMoreExams:
		return fmt.Sprintf("TA %d: No more exams to mark", e.Worker)
	case KindExit:
		return fmt.Sprintf("TA %d: Exiting - all exams completed", e.Worker)
	case KindWorkerFailed:
		return fmt.Sprintf("TA %d: Stopped: %s", e.Worker, e.Error)
	}
	return fmt.Sprintf("TA %d: %s", e.Worker, e.Kind)
}
