package fs

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/marking/service/dao"
)

// Service implements a filesystem-backed rubric resource.
type Service struct {
	URL string
	fs  afs.Service
	mu  sync.Mutex
}

var _ dao.Rubric = (*Service)(nil)

// Load reads every rubric line.
func (s *Service) Load(ctx context.Context) ([]string, error) {
	exists, err := s.fs.Exists(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check rubric %s: %w", s.URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("failed to open rubric file %s: %w", s.URL, dao.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read rubric file %s: %w", s.URL, err)
	}
	return dao.SplitLines(string(data)), nil
}

// Save rewrites the rubric resource. The mutex only protects the in-process
// upload; cross worker serialisation is the RUBRIC domain's job.
func (s *Service) Save(ctx context.Context, lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	content := dao.JoinLines(lines)
	if err := s.fs.Upload(ctx, s.URL, file.DefaultFileOsMode, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to open rubric file for writing %s: %w", s.URL, err)
	}
	return nil
}

// New creates a rubric resource at location.
func New(location string, fs afs.Service) (*Service, error) {
	if location == "" {
		return nil, fmt.Errorf("rubric location cannot be empty: %w", dao.ErrInvalidID)
	}
	if fs == nil {
		fs = afs.New()
	}
	return &Service{URL: url.Normalize(location, file.Scheme), fs: fs}, nil
}
