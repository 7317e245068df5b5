package lock

import "sync"

// Violation describes a domain requested while the holder already held another.
type Violation struct {
	Holder    int
	Held      Domain
	Requested Domain
}

// Stats is a snapshot of monitor counters for one domain.
type Stats struct {
	Acquired       int
	Outstanding    int
	MaxOutstanding int
}

// Monitor instruments acquire and release calls. All methods are safe on a nil receiver.
type Monitor struct {
	mu         sync.Mutex
	stats      [NumDomains]Stats
	held       map[int][]Domain
	violations []Violation
}

func (m *Monitor) acquired(holder int, domain Domain) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, held := range m.held[holder] {
		m.violations = append(m.violations, Violation{Holder: holder, Held: held, Requested: domain})
	}
	m.held[holder] = append(m.held[holder], domain)
	stat := &m.stats[domain]
	stat.Acquired++
	stat.Outstanding++
	if stat.Outstanding > stat.MaxOutstanding {
		stat.MaxOutstanding = stat.Outstanding
	}
}

func (m *Monitor) released(holder int, domain Domain) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	held := m.held[holder]
	for i := len(held) - 1; i >= 0; i-- {
		if held[i] == domain {
			held = append(held[:i], held[i+1:]...)
			break
		}
	}
	if len(held) == 0 {
		delete(m.held, holder)
	} else {
		m.held[holder] = held
	}
	m.stats[domain].Outstanding--
}

// Stats returns counters for domain.
func (m *Monitor) Stats(domain Domain) Stats {
	if m == nil || !domain.valid() {
		return Stats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats[domain]
}

// Violations returns recorded nested acquisitions.
func (m *Monitor) Violations() []Violation {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Violation(nil), m.violations...)
}

// NewMonitor creates an empty monitor.
func NewMonitor() *Monitor {
	return &Monitor{held: map[int][]Domain{}}
}
