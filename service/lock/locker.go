package lock

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned when acquiring a domain of a destroyed lock set.
	ErrClosed = errors.New("lock: closed")
	// ErrInvalidDomain is returned for an unknown domain.
	ErrInvalidDomain = errors.New("lock: invalid domain")
)

// Locker grants temporary exclusive access to a protection domain.
type Locker interface {
	// Acquire blocks until domain is free or ctx is done.
	Acquire(ctx context.Context, domain Domain) (*Guard, error)
}

// Guard represents a held domain. Release is safe to call more than once;
// only the first call frees the domain.
type Guard struct {
	domain   Domain
	holder   int
	released bool
	release  func()
	monitor  *Monitor
}

// Domain returns the guarded domain.
func (g *Guard) Domain() Domain {
	return g.domain
}

// Release frees the domain.
func (g *Guard) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	g.monitor.released(g.holder, g.domain)
	if g.release != nil {
		g.release()
	}
}

type holderKey struct{}

// WithHolder returns a context identifying the lock holder, typically a worker id.
func WithHolder(ctx context.Context, holder int) context.Context {
	return context.WithValue(ctx, holderKey{}, holder)
}

// HolderFrom returns holder stored in ctx or 0.
func HolderFrom(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	if holder, ok := ctx.Value(holderKey{}).(int); ok {
		return holder
	}
	return 0
}

func checkDomain(domain Domain) error {
	if !domain.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDomain, int(domain))
	}
	return nil
}

// Set is a destroyable locker, as owned by the supervisor.
type Set interface {
	Locker
	Monitor() *Monitor
	Close() error
}

var (
	_ Set = (*Service)(nil)
	_ Set = (*Nop)(nil)
)
