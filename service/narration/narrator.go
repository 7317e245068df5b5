// Package narration produces the human readable trace of a marking run, one
// line per event. Workers publish events to a queue; a single listener
// renders them in publish order so that lines from different workers never
// interleave mid-line.
package narration

import (
	"context"
	"sync"

	"github.com/viant/marking/internal/clock"
)

// Narrator accepts events. Implementations must be safe for concurrent use.
type Narrator interface {
	Narrate(ctx context.Context, event *Event)
}

// Discard drops every event.
type Discard struct{}

// Narrate does nothing.
func (Discard) Narrate(context.Context, *Event) {}

// Recorder keeps every event in memory, used by tests and run reports.
type Recorder struct {
	mux    sync.Mutex
	events []Event
}

// Narrate appends a copy of event.
func (r *Recorder) Narrate(_ context.Context, event *Event) {
	r.mux.Lock()
	defer r.mux.Unlock()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = clock.Now()
	}
	r.events = append(r.events, *event)
}

// Events returns recorded events.
func (r *Recorder) Events() []Event {
	r.mux.Lock()
	defer r.mux.Unlock()
	return append([]Event(nil), r.events...)
}

// Count returns number of recorded events of kind.
func (r *Recorder) Count(kind Kind) int {
	r.mux.Lock()
	defer r.mux.Unlock()
	count := 0
	for i := range r.events {
		if r.events[i].Kind == kind {
			count++
		}
	}
	return count
}

// Filter returns recorded events of kind.
func (r *Recorder) Filter(kind Kind) []Event {
	r.mux.Lock()
	defer r.mux.Unlock()
	var ret []Event
	for i := range r.events {
		if r.events[i].Kind == kind {
			ret = append(ret, r.events[i])
		}
	}
	return ret
}

// Tee fans events out to every narrator.
type Tee []Narrator

// Narrate forwards event to all narrators.
func (t Tee) Narrate(ctx context.Context, event *Event) {
	for _, n := range t {
		if n != nil {
			n.Narrate(ctx, event)
		}
	}
}
