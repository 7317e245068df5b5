package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/marking/internal/clock"
)

// Delta represents an incremental counter change.
type Delta struct {
	ExamsLoaded      int
	QuestionsClaimed int
	QuestionsMarked  int
	Reviews          int
	Corrections      int
	LoadFailures     int
	WorkersExited    int
}

// Progress keeps aggregated counters for a run. It is safe for concurrent use.
type Progress struct {
	RunID     string
	StartedAt time.Time

	ExamsLoaded      int
	QuestionsClaimed int
	QuestionsMarked  int
	Reviews          int
	Corrections      int
	LoadFailures     int
	WorkersExited    int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the delta. The onChange callback, if any, receives a copy
// outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.ExamsLoaded += d.ExamsLoaded
	p.QuestionsClaimed += d.QuestionsClaimed
	p.QuestionsMarked += d.QuestionsMarked
	p.Reviews += d.Reviews
	p.Corrections += d.Corrections
	p.LoadFailures += d.LoadFailures
	p.WorkersExited += d.WorkersExited
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

func (p *Progress) copy() Progress {
	return Progress{
		RunID:            p.RunID,
		StartedAt:        p.StartedAt,
		ExamsLoaded:      p.ExamsLoaded,
		QuestionsClaimed: p.QuestionsClaimed,
		QuestionsMarked:  p.QuestionsMarked,
		Reviews:          p.Reviews,
		Corrections:      p.Corrections,
		LoadFailures:     p.LoadFailures,
		WorkersExited:    p.WorkersExited,
	}
}

// OnChange registers a callback invoked after every Update; nil disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker for runID and embeds it in a derived context.
func WithNewTracker(ctx context.Context, runID string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{RunID: runID, StartedAt: clock.Now(), onChange: onChange}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies the delta to the tracker in ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
