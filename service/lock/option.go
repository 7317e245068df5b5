package lock

// Option configures Service.
type Option func(s *Service)

// WithMonitor records acquire and release calls.
func WithMonitor(monitor *Monitor) Option {
	return func(s *Service) {
		s.monitor = monitor
	}
}
