//go:build !race

package marking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/marking/model"
	"github.com/viant/marking/service/delay"
	"github.com/viant/marking/service/lock"
)

// Without mutual exclusion two workers that scan the flags before either
// sets one both claim the same question.
func TestService_UnsynchronizedDuplicateClaims(t *testing.T) {
	state := newState("0042")
	monitor := lock.NewMonitor()
	srv := New(state, lock.NewNop(monitor), WithDelay(delay.Instant()), WithClaimHook(gate(2, time.Second)))

	var wg sync.WaitGroup
	for id := 1; id <= 2; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, _ = srv.Mark(lock.WithHolder(context.Background(), id), model.NewAssistant(id, 1))
		}(id)
	}
	wg.Wait()

	duplicates := srv.Ledger().Duplicates()
	assert.NotEmpty(t, duplicates)
	assert.Equal(t, 0, duplicates[0].Question)
	assert.Greater(t, len(srv.Ledger().Claims()), model.RubricSize)
	assert.GreaterOrEqual(t, monitor.Stats(lock.Shared).MaxOutstanding, 2)
}
