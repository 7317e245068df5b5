package dao

import (
	"context"

	"github.com/viant/marking/model"
)

// Rubric is the backing resource of the shared rubric.
type Rubric interface {
	// Load reads all rubric lines.
	Load(ctx context.Context) ([]string, error)

	// Save rewrites the resource in full.
	Save(ctx context.Context, lines []string) error
}

// Exam provides exam resources by zero based index.
type Exam interface {
	Load(ctx context.Context, index int) (*model.Exam, error)
}
