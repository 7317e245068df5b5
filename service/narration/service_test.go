package narration

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_WritesEveryEvent(t *testing.T) {
	var buf bytes.Buffer
	srv := New(&buf)
	srv.Start()
	ctx := context.Background()
	var wg sync.WaitGroup
	for worker := 1; worker <= 4; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for q := 1; q <= 5; q++ {
				srv.Narrate(ctx, &Event{Kind: KindMarking, Worker: worker, Question: q, StudentID: 1})
			}
		}(worker)
	}
	wg.Wait()
	require.NoError(t, srv.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 20)
	for worker := 1; worker <= 4; worker++ {
		last := 0
		for _, line := range lines {
			var w, q, s int
			if _, err := fmt.Sscanf(line, "TA %d: Marking question %d for student %d", &w, &q, &s); err != nil || w != worker {
				continue
			}
			assert.Greater(t, q, last, "per worker order preserved")
			last = q
		}
		assert.Equal(t, 5, last)
	}

	srv.Narrate(ctx, &Event{Kind: KindExit, Worker: 1})
	assert.NotContains(t, buf.String(), "Exiting")
}

func TestService_CloseWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	srv := New(&buf)
	srv.Narrate(context.Background(), &Event{Kind: KindComplete})
	require.NoError(t, srv.Close())
	assert.Equal(t, "All TAs have finished marking. Program completed.\n", buf.String())
}

func TestRecorderAndTee(t *testing.T) {
	recorder := &Recorder{}
	other := &Recorder{}
	tee := Tee{recorder, nil, other, Discard{}}
	tee.Narrate(context.Background(), &Event{Kind: KindMarking, Worker: 1})
	tee.Narrate(context.Background(), &Event{Kind: KindExit, Worker: 1})
	assert.Equal(t, 1, recorder.Count(KindMarking))
	assert.Len(t, other.Events(), 2)
	assert.Len(t, recorder.Filter(KindExit), 1)
	assert.False(t, recorder.Events()[0].CreatedAt.IsZero())
}
