package lock

import (
	"context"
	"sync"
)

// Service is a set of binary locks, one per protection domain.
type Service struct {
	slots     [NumDomains]chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	monitor   *Monitor
}

var _ Locker = (*Service)(nil)

// Acquire blocks until domain is free, ctx is done or the lock set is closed.
func (s *Service) Acquire(ctx context.Context, domain Domain) (*Guard, error) {
	if err := checkDomain(domain); err != nil {
		return nil, err
	}
	select {
	case <-s.done:
		return nil, ErrClosed
	default:
	}
	slot := s.slots[domain]
	select {
	case slot <- struct{}{}:
	case <-s.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	holder := HolderFrom(ctx)
	s.monitor.acquired(holder, domain)
	return &Guard{
		domain:  domain,
		holder:  holder,
		monitor: s.monitor,
		release: func() { <-slot },
	}, nil
}

// Monitor returns the instrumentation monitor or nil.
func (s *Service) Monitor() *Monitor {
	return s.monitor
}

// Close destroys the lock set; blocked and future acquisitions fail with ErrClosed.
func (s *Service) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

// New creates a lock set with every domain free.
func New(options ...Option) *Service {
	ret := &Service{done: make(chan struct{})}
	for i := range ret.slots {
		ret.slots[i] = make(chan struct{}, 1)
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
