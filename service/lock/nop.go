package lock

import "context"

// Nop is a locker that never blocks; every caller gets a guard immediately.
type Nop struct {
	monitor *Monitor
}

var _ Locker = (*Nop)(nil)

// Acquire returns a guard without excluding anyone.
func (n *Nop) Acquire(ctx context.Context, domain Domain) (*Guard, error) {
	if err := checkDomain(domain); err != nil {
		return nil, err
	}
	holder := HolderFrom(ctx)
	n.monitor.acquired(holder, domain)
	return &Guard{domain: domain, holder: holder, monitor: n.monitor}, nil
}

// Monitor returns the instrumentation monitor or nil.
func (n *Nop) Monitor() *Monitor {
	return n.monitor
}

// Close is a no-op.
func (n *Nop) Close() error {
	return nil
}

// NewNop creates a locker for the unsynchronized baseline.
func NewNop(monitor *Monitor) *Nop {
	return &Nop{monitor: monitor}
}
