package delay

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRange_Draw(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := Range{Min: 500 * time.Millisecond, Max: time.Second}
	for i := 0; i < 1000; i++ {
		d := r.Draw(rng)
		assert.GreaterOrEqual(t, d, r.Min)
		assert.LessOrEqual(t, d, r.Max)
	}
	assert.Equal(t, time.Second, Range{Min: time.Second, Max: time.Second}.Draw(rng))
	assert.Equal(t, r.Min, r.Draw(nil))
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		config      Config
		expectErr   bool
	}{
		{description: "default", config: DefaultConfig()},
		{description: "zero", config: Config{}},
		{description: "inverted think", config: Config{Think: Range{Min: 2, Max: 1}}, expectErr: true},
		{description: "negative mark", config: Config{Mark: Range{Min: -1, Max: 1}}, expectErr: true},
		{description: "negative pace", config: Config{LoopPace: -1}, expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_UsesSleeper(t *testing.T) {
	var mux sync.Mutex
	var slept []time.Duration
	recorder := func(ctx context.Context, d time.Duration) error {
		mux.Lock()
		defer mux.Unlock()
		slept = append(slept, d)
		return nil
	}
	srv := New(DefaultConfig(), recorder)
	rng := rand.New(rand.NewSource(7))
	ctx := context.Background()

	think, err := srv.Think(ctx, rng)
	assert.NoError(t, err)
	mark, err := srv.Mark(ctx, rng)
	assert.NoError(t, err)
	assert.NoError(t, srv.MarkPace(ctx))
	assert.NoError(t, srv.LoopPace(ctx))
	assert.Equal(t, []time.Duration{think, mark, 100 * time.Millisecond, 100 * time.Millisecond}, slept)
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	started := time.Now()
	assert.ErrorIs(t, Sleep(ctx, time.Minute), context.Canceled)
	assert.Less(t, time.Since(started), time.Second)
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))
	assert.ErrorIs(t, NoSleep(ctx, time.Minute), context.Canceled)
}
