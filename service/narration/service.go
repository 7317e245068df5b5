package narration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/viant/marking/internal/clock"
	"github.com/viant/marking/service/messaging"
	"github.com/viant/marking/service/messaging/memory"
)

// Service writes events to a writer through a queue drained by one listener.
type Service struct {
	queue  messaging.Queue[Event]
	writer io.Writer
	logger *slog.Logger
	wg     sync.WaitGroup
	once   sync.Once
}

var _ Narrator = (*Service)(nil)

// Narrate publishes event; events published after Close are dropped.
func (s *Service) Narrate(ctx context.Context, event *Event) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = clock.Now()
	}
	if err := s.queue.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Debug("narration dropped", "kind", event.Kind, "error", err)
	}
}

// Start begins rendering events.
func (s *Service) Start() {
	s.once.Do(func() {
		s.wg.Add(1)
		go s.listen()
	})
}

func (s *Service) listen() {
	defer s.wg.Done()
	ctx := context.Background()
	for {
		msg, err := s.queue.Consume(ctx)
		if err != nil {
			if !errors.Is(err, messaging.ErrClosed) {
				s.logger.Error("narration consume failed", "error", err)
			}
			return
		}
		if _, err := fmt.Fprintln(s.writer, msg.T().String()); err != nil {
			s.logger.Error("narration write failed", "error", err)
		}
		_ = msg.Ack()
	}
}

// Close stops accepting events and waits until published ones are written.
func (s *Service) Close() error {
	err := s.queue.Close()
	s.Start()
	s.wg.Wait()
	return err
}

// Option configures Service.
type Option func(s *Service)

// WithQueue sets the event queue.
func WithQueue(queue messaging.Queue[Event]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a narration service writing to writer; call Start before a run and Close after.
func New(writer io.Writer, options ...Option) *Service {
	ret := &Service{writer: writer}
	for _, opt := range options {
		opt(ret)
	}
	if ret.queue == nil {
		ret.queue = memory.NewQueue[Event](memory.DefaultConfig())
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	if ret.writer == nil {
		ret.writer = io.Discard
	}
	return ret
}
