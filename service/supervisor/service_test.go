package supervisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/marking/model"
	"github.com/viant/marking/runtime/shared"
	"github.com/viant/marking/service/dao/exam/memory"
	rubricmemory "github.com/viant/marking/service/dao/rubric/memory"
	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/lock"
	"github.com/viant/marking/service/narration"
	"github.com/viant/marking/service/review"
)

var digits = []string{"1, 0", "2, 0", "3, 0", "4, 0", "5, 0"}

func testConfig(workers int) Config {
	config := DefaultConfig()
	config.Workers = workers
	config.Seed = 7
	return config
}

func TestService_Run(t *testing.T) {
	testCases := []struct {
		description string
		workers     int
		studentIDs  []int
		decider     review.Decider
	}{
		{description: "two workers", workers: 2, studentIDs: []int{101, 102, 103}, decider: review.Never},
		{description: "many workers", workers: 6, studentIDs: []int{1, 2, 3, 4, 5, 6, 7}, decider: review.Never},
		{description: "every entry corrected", workers: 3, studentIDs: []int{17, 18}, decider: review.Always},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			rubric := rubricmemory.New(digits...)
			exams := memory.NewSequence(tc.studentIDs...)
			recorder := &narration.Recorder{}
			srv := New(testConfig(tc.workers), rubric, exams,
				WithSleeper(delay.NoSleep),
				WithDecider(tc.decider),
				WithNarrator(recorder))

			report, err := srv.Run(context.Background())
			require.NoError(t, err)
			require.NoError(t, report.Err())

			realExams := len(tc.studentIDs)
			assert.Equal(t, realExams, report.ExamsProcessed)
			assert.Len(t, report.Exams(), realExams)
			for index, count := range report.Claims {
				assert.Equal(t, model.RubricSize, count, "exam %d", index)
			}
			assert.Empty(t, report.Duplicates)
			assert.Equal(t, realExams, report.ExamIndex)
			assert.Contains(t, rangeIDs(tc.workers), report.FinishedBy)
			assert.Equal(t, tc.workers, report.Progress.WorkersExited)
			assert.Equal(t, realExams+1, report.Progress.ExamsLoaded)
			assert.Equal(t, 1, report.Locks[lock.Shared].MaxOutstanding)
			assert.LessOrEqual(t, report.Locks[lock.Rubric].MaxOutstanding, 1)
			assert.Empty(t, report.Violations)
			assert.Equal(t, digits, report.InitialRubric)

			if report.Corrections == 0 {
				assert.Equal(t, digits, report.FinalRubric)
				assert.Empty(t, report.RubricDiff)
			} else {
				passes := report.Corrections / model.RubricSize
				for i, line := range report.FinalRubric {
					assert.Equal(t, fmt.Sprintf("%d, %c", i+1, '0'+passes), line)
				}
				assert.Equal(t, report.FinalRubric, rubric.Lines())
				assert.Contains(t, report.RubricDiff, "-1, 0")
				assert.Equal(t, DiffStats{Added: 5, Removed: 5}, report.DiffStats)
			}

			assert.Equal(t, 1, recorder.Count(narration.KindStart))
			assert.Equal(t, 1, recorder.Count(narration.KindComplete))
			assert.Equal(t, 1, recorder.Count(narration.KindSentinel))
			events := recorder.Events()
			assert.Equal(t, narration.KindComplete, events[len(events)-1].Kind)

			assert.Equal(t, 0, shared.States.Len())
			assert.Equal(t, 0, LockSets.Len())
		})
	}
}

func rangeIDs(n int) []int {
	ret := make([]int, n)
	for i := range ret {
		ret[i] = i + 1
	}
	return ret
}

func TestService_RunSetupFailure(t *testing.T) {
	missing := errors.New("missing")
	testCases := []struct {
		description string
		rubric      *rubricmemory.Service
		exams       *memory.Service
	}{
		{
			description: "rubric resource missing",
			rubric: func() *rubricmemory.Service {
				ret := rubricmemory.New(digits...)
				ret.Fail(missing)
				return ret
			}(),
			exams: memory.NewSequence(1),
		},
		{
			description: "first exam missing",
			rubric:      rubricmemory.New(digits...),
			exams:       memory.New(),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			recorder := &narration.Recorder{}
			srv := New(testConfig(2), tc.rubric, tc.exams, WithSleeper(delay.NoSleep), WithNarrator(recorder))
			report, err := srv.Run(context.Background())
			assert.Nil(t, report)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSetup)
			assert.Equal(t, 0, recorder.Count(narration.KindRubricCheck))
			assert.Equal(t, 0, recorder.Count(narration.KindComplete))
			assert.Equal(t, 0, tc.exams.Loads(1))
			assert.Equal(t, 0, shared.States.Len())
			assert.Equal(t, 0, LockSets.Len())
		})
	}
}

func TestService_RunInvalidConfig(t *testing.T) {
	srv := New(testConfig(1), rubricmemory.New(digits...), memory.NewSequence(1))
	_, err := srv.Run(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSetup))
	assert.Contains(t, err.Error(), "workers must be at least 2")
}

func TestService_RunReusesStaleResources(t *testing.T) {
	config := testConfig(2)
	stale, _, err := shared.States.Open(config.SharedKey, func() (*shared.State, error) { return shared.New(1), nil })
	require.NoError(t, err)
	stale.Finish(42)
	old := lock.New()
	_, _, err = LockSets.Open(config.LockKey, func() (lock.Set, error) { return old, nil })
	require.NoError(t, err)

	report, err := New(config, rubricmemory.New(digits...), memory.NewSequence(5, 6), WithSleeper(delay.NoSleep)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.ExamsProcessed)
	assert.NotEqual(t, 42, report.FinishedBy)
	_, err = old.Acquire(context.Background(), lock.Shared)
	assert.ErrorIs(t, err, lock.ErrClosed)
	assert.Equal(t, 0, shared.States.Len())
}

func TestService_RunLoadFailureGivesUp(t *testing.T) {
	config := testConfig(3)
	config.MaxLoadFailures = 2
	exams := memory.New("0001", "0002")
	report, err := New(config, rubricmemory.New(digits...), exams, WithSleeper(delay.NoSleep)).Run(context.Background())
	require.NoError(t, err)
	assert.NoError(t, report.Err())
	assert.Equal(t, 2, report.ExamsProcessed)
	assert.Equal(t, 1, report.ExamIndex)
	assert.Equal(t, 2, exams.Loads(2))
	assert.Equal(t, 2, report.Progress.LoadFailures)
}

func TestService_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := New(testConfig(2), rubricmemory.New(digits...), memory.NewSequence(1), WithSleeper(delay.NoSleep)).Run(ctx)
	require.NoError(t, err)
	require.Error(t, report.Err())
	assert.ErrorIs(t, report.Err(), context.Canceled)
	assert.Len(t, report.WorkerErrors, 2)
}

func TestRubricDiff(t *testing.T) {
	diff, stats, err := RubricDiff([]string{"1, A", "2, B"}, []string{"1, A", "2, C"}, "rubric.txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(diff, "--- rubric.txt (initial)"))
	assert.Contains(t, diff, "-2, B")
	assert.Contains(t, diff, "+2, C")
	assert.Equal(t, DiffStats{Added: 1, Removed: 1}, stats)

	diff, stats, err = RubricDiff(digits, digits, "rubric.txt")
	require.NoError(t, err)
	assert.Empty(t, diff)
	assert.Equal(t, DiffStats{}, stats)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	config := DefaultConfig()
	config.Workers = 0
	config.TotalExams = 0
	config.LockKey = config.SharedKey
	config.CorrectionPercent = 101
	err := config.Validate()
	require.Error(t, err)
	for _, fragment := range []string{"workers", "totalExams", "lockKey", "correctionPercent"} {
		assert.Contains(t, err.Error(), fragment)
	}
}

