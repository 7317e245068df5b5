package marking

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/narration"
	"github.com/viant/marking/service/review"
	"github.com/viant/marking/service/supervisor"
)

func writeFixture(t *testing.T, studentIDs ...int) (dir string) {
	dir = t.TempDir()
	rubric := "1, A\n2, B\n3, C\n4, D\n5, E\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rubric.txt"), []byte(rubric), 0644))
	for i, id := range studentIDs {
		name := filepath.Join(dir, fmt.Sprintf("exam_%04d.txt", i+1))
		require.NoError(t, os.WriteFile(name, []byte(fmt.Sprintf("%04d\nQ1 answer\n", id)), 0644))
	}
	return dir
}

func TestService_Run(t *testing.T) {
	dir := writeFixture(t, 17, 18, 9999)
	config := DefaultConfig()
	config.Workers = 3
	config.RubricURL = filepath.Join(dir, "rubric.txt")
	config.ExamBaseURL = dir
	config.Seed = 1

	output := &bytes.Buffer{}
	recorder := &narration.Recorder{}
	srv := New(WithConfig(config), WithOutput(output), WithSleeper(delay.NoSleep), WithDecider(review.Always), WithNarrator(recorder))
	report, err := srv.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, report.Err())
	assert.Equal(t, 2, report.ExamsProcessed)
	assert.Empty(t, report.Duplicates)

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "Starting synchronized marking system with 3 TAs", lines[0])
	assert.Equal(t, "TA loaded exam: exam_0001.txt (Student ID: 17)", lines[1])
	assert.Equal(t, "All TAs have finished marking. Program completed.", lines[len(lines)-1])
	assert.Contains(t, output.String(), "Found termination exam (9999)")
	assert.Len(t, lines, len(recorder.Events()))

	saved, err := os.ReadFile(config.RubricURL)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(report.FinalRubric, "\n")+"\n", string(saved))
	assert.NotEqual(t, report.InitialRubric, report.FinalRubric)
}

func TestService_RunSetupFailure(t *testing.T) {
	dir := t.TempDir()
	config := DefaultConfig()
	config.Workers = 2
	config.RubricURL = filepath.Join(dir, "rubric.txt")
	config.ExamBaseURL = dir
	output := &bytes.Buffer{}
	_, err := New(WithConfig(config), WithOutput(output), WithSleeper(delay.NoSleep)).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, supervisor.ErrSetup)
	assert.Equal(t, "Starting synchronized marking system with 2 TAs\n", output.String())
}

func TestService_RunInvalidConfig(t *testing.T) {
	output := &bytes.Buffer{}
	_, err := New(WithOutput(output)).Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidWorkers)
	assert.Empty(t, output.String())
}
