package fs

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/marking/model"
	"github.com/viant/marking/service/dao"
)

// Service loads exam resources named exam_NNNN.txt from a base location.
type Service struct {
	baseURL string
	fs      afs.Service
}

var _ dao.Exam = (*Service)(nil)

// Load reads the first line of the exam with the given zero based index.
func (s *Service) Load(ctx context.Context, index int) (*model.Exam, error) {
	if index < 0 {
		return nil, fmt.Errorf("exam index %d: %w", index, dao.ErrInvalidID)
	}
	location := s.examURL(index)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check exam file %s: %w", location, err)
	}
	if !exists {
		return nil, fmt.Errorf("failed to open exam file %s: %w", location, dao.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read exam file %s: %w", location, err)
	}
	line, ok := dao.FirstLine(string(data))
	if !ok {
		return nil, fmt.Errorf("failed to read exam file %s: %w", location, dao.ErrEmpty)
	}
	return model.NewExam(index, line), nil
}

func (s *Service) examURL(index int) string {
	return url.Join(s.baseURL, model.ExamName(index))
}

// New creates an exam source rooted at baseURL.
func New(baseURL string, fs afs.Service) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("exam base location cannot be empty: %w", dao.ErrInvalidID)
	}
	if fs == nil {
		fs = afs.New()
	}
	return &Service{baseURL: url.Normalize(baseURL, file.Scheme), fs: fs}, nil
}
