package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/marking/model"
	"github.com/viant/marking/service/dao"
)

// Service is an in-memory exam source keyed by zero based index.
type Service struct {
	mux   sync.RWMutex
	exams map[int]string
	loads map[int]int
}

var _ dao.Exam = (*Service)(nil)

func (s *Service) Load(_ context.Context, index int) (*model.Exam, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.loads[index]++
	text, ok := s.exams[index]
	if !ok {
		return nil, fmt.Errorf("failed to open exam file %s: %w", model.ExamName(index), dao.ErrNotFound)
	}
	line, ok := dao.FirstLine(text)
	if !ok {
		return nil, fmt.Errorf("failed to read exam file %s: %w", model.ExamName(index), dao.ErrEmpty)
	}
	return model.NewExam(index, line), nil
}

// Put stores exam text at index.
func (s *Service) Put(index int, text string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.exams[index] = text
}

// Remove deletes exam at index.
func (s *Service) Remove(index int) {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.exams, index)
}

// Loads returns the number of load attempts for index.
func (s *Service) Loads(index int) int {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.loads[index]
}

// New creates a source holding texts at indexes 0..n-1.
func New(texts ...string) *Service {
	ret := &Service{exams: map[int]string{}, loads: map[int]int{}}
	for i, text := range texts {
		ret.exams[i] = text
	}
	return ret
}

// NewSequence creates real exams with student ids followed by the sentinel exam.
func NewSequence(studentIDs ...int) *Service {
	ret := New()
	for i, id := range studentIDs {
		ret.exams[i] = fmt.Sprintf("%04d\n", id)
	}
	ret.exams[len(studentIDs)] = fmt.Sprintf("%04d\n", model.SentinelStudentID)
	return ret
}
