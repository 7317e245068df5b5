package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/marking/service/messaging"
)

// Config for memory queue implementation
type Config struct {
	QueueBuffer int
}

// DefaultConfig returns a standard configuration for memory queue
func DefaultConfig() Config {
	return Config{QueueBuffer: 256}
}

// Message implements messaging.Message for the in-memory queue
type Message[T any] struct {
	seq       uint64
	payload   T
	mu        sync.Mutex
	processed bool
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// Seq returns the publish order of the message, starting at 1.
func (m *Message[T]) Seq() uint64 {
	return m.seq
}

// Ack acknowledges the message as processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message %d already processed", m.seq)
	}
	m.processed = true
	return nil
}

// Queue implements an in-memory FIFO messaging.Queue
type Queue[T any] struct {
	messages chan *Message[T]
	mu       sync.RWMutex
	closed   bool
	seq      uint64
	seqMu    sync.Mutex
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{messages: make(chan *Message[T], config.QueueBuffer)}
}

// Publish adds a copy of t to the queue, blocking while the buffer is full
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return messaging.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	q.seqMu.Lock()
	q.seq++
	msg := &Message[T]{seq: q.seq, payload: *t}
	q.seqMu.Unlock()
	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves a single item from the queue
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg, ok := <-q.messages:
		if !ok {
			return nil, messaging.ErrClosed
		}
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting messages. It waits for in-flight publishers.
func (q *Queue[T]) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	close(q.messages)
	return nil
}

// Size returns the current number of messages in the queue
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
