package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/marking/model"
)

func TestState_ClaimNext(t *testing.T) {
	state := New(20)
	state.LoadExam(model.NewExam(0, "0001"))
	for i := 0; i < model.RubricSize; i++ {
		assert.False(t, state.AllMarked())
		idx, ok := state.ClaimNext()
		assert.True(t, ok)
		assert.Equal(t, i, idx)
	}
	assert.True(t, state.AllMarked())
	idx, ok := state.ClaimNext()
	assert.False(t, ok)
	assert.Equal(t, -1, idx)

	state.LoadExam(model.NewExam(1, "0002"))
	assert.False(t, state.AllMarked())
	assert.Equal(t, 1, state.ExamIndex)
	assert.Equal(t, 2, state.StudentID)
}

func TestState_Finish(t *testing.T) {
	state := New(3)
	state.Finish(2)
	state.Finish(1)
	assert.True(t, state.Finished)
	assert.Equal(t, 2, state.FinishedBy)

	state.LoadExam(model.NewExam(2, "9999"))
	assert.True(t, state.AtSentinel())
	assert.True(t, state.Finished)
}

func TestState_SnapshotIsCopy(t *testing.T) {
	state := New(1)
	state.LoadRubric([]string{"1, A"})
	snapshot := state.Snapshot()
	state.Rubric[0] = "1, B"
	state.Questions[0] = model.Marked
	assert.Equal(t, "1, A", snapshot.Rubric[0])
	assert.Equal(t, model.Unmarked, snapshot.Questions[0])
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry[*State]()
	calls := 0
	create := func() (*State, error) {
		calls++
		return New(20), nil
	}
	first, created, err := registry.Open(1234, create)
	require.NoError(t, err)
	assert.True(t, created)
	second, created, err := registry.Open(1234, create)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	_, _, err = registry.Open(1, func() (*State, error) { return nil, errors.New("boom") })
	assert.Error(t, err)
	assert.Equal(t, 1, registry.Len())

	released := false
	require.NoError(t, registry.Destroy(1234, func(*State) error { released = true; return nil }))
	assert.True(t, released)
	_, ok := registry.Get(1234)
	assert.False(t, ok)
	assert.ErrorIs(t, registry.Destroy(1234, nil), ErrNotFound)
}
