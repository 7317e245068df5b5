package supervisor

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffStats counts changed lines of a unified diff.
type DiffStats struct {
	Added   int
	Removed int
}

// RubricDiff returns a unified diff between two rubric versions, empty when equal.
func RubricDiff(before, after []string, location string) (string, DiffStats, error) {
	oldContent := strings.Join(before, "\n") + "\n"
	newContent := strings.Join(after, "\n") + "\n"
	if oldContent == newContent {
		return "", DiffStats{}, nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: location + " (initial)",
		ToFile:   location + " (final)",
		Context:  1,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", DiffStats{}, err
	}
	var stats DiffStats
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			stats.Added++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			stats.Removed++
		}
	}
	return text, stats, nil
}
