package shared

import (
	"github.com/viant/marking/model"
)

// State is the shared marking state.
type State struct {
	// Rubric is guarded by the RUBRIC domain.
	Rubric model.Rubric
	// ExamText is the raw first line of the current exam.
	ExamText string
	// StudentID of the current exam; model.SentinelStudentID ends the run.
	StudentID int
	// Questions flags are guarded by the SHARED domain.
	Questions [model.RubricSize]model.QuestionStatus
	// Finished latches termination; it never resets.
	Finished bool
	// FinishedBy is the worker that latched Finished, 0 for none.
	FinishedBy int
	// ExamIndex is the zero based cursor into the exam sequence; it never decreases.
	ExamIndex int
	// TotalExams is fixed at startup.
	TotalExams int
	// LoadFailures counts consecutive failed attempts to load the next exam.
	LoadFailures int
}

// New creates an empty state for totalExams exams.
func New(totalExams int) *State {
	return &State{TotalExams: totalExams}
}

// LoadRubric replaces the rubric with lines.
func (s *State) LoadRubric(lines []string) {
	s.Rubric.SetLines(lines)
}

// LoadExam installs exam as the current one and resets question flags.
func (s *State) LoadExam(exam *model.Exam) {
	s.ExamText = exam.Text
	s.StudentID = exam.StudentID
	s.ExamIndex = exam.Index
	s.LoadFailures = 0
	s.ResetQuestions()
}

// ResetQuestions marks every question unmarked.
func (s *State) ResetQuestions() {
	for i := range s.Questions {
		s.Questions[i] = model.Unmarked
	}
}

// FirstUnmarked returns index of the first unmarked question or -1.
func (s *State) FirstUnmarked() int {
	for i, status := range s.Questions {
		if status == model.Unmarked {
			return i
		}
	}
	return -1
}

// ClaimNext marks the first unmarked question and returns its index.
func (s *State) ClaimNext() (int, bool) {
	i := s.FirstUnmarked()
	if i < 0 {
		return -1, false
	}
	s.Questions[i] = model.Marked
	return i, true
}

// AllMarked reports whether every question has been claimed.
func (s *State) AllMarked() bool {
	return s.FirstUnmarked() < 0
}

// Finish latches termination. Only the first caller is recorded as finisher.
func (s *State) Finish(by int) {
	if s.Finished {
		return
	}
	s.Finished = true
	s.FinishedBy = by
}

// AtSentinel reports whether the current exam is the end-of-queue marker.
func (s *State) AtSentinel() bool {
	return s.StudentID == model.SentinelStudentID
}

// Snapshot returns a copy of the state.
func (s *State) Snapshot() State {
	return *s
}
