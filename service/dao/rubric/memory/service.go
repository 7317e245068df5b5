package memory

import (
	"context"
	"sync"

	"github.com/viant/marking/service/dao"
)

// Service is an in-memory rubric resource that records every save.
type Service struct {
	mux   sync.Mutex
	lines []string
	saves int
	err   error
}

var _ dao.Rubric = (*Service)(nil)

func (s *Service) Load(_ context.Context) ([]string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]string(nil), s.lines...), nil
}

func (s *Service) Save(_ context.Context, lines []string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.lines = append([]string(nil), lines...)
	s.saves++
	return nil
}

// Lines returns the last saved content.
func (s *Service) Lines() []string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]string(nil), s.lines...)
}

// Saves returns the number of full rewrites.
func (s *Service) Saves() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.saves
}

// Fail makes subsequent loads return err.
func (s *Service) Fail(err error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.err = err
}

// New creates a rubric resource holding lines.
func New(lines ...string) *Service {
	return &Service{lines: append([]string(nil), lines...)}
}
