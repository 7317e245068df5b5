package shared

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned when destroying an unknown key.
var ErrNotFound = errors.New("shared: key not found")

// Registry is a keyed namespace of shared resources. Open creates a resource
// when the key is absent and returns the existing one otherwise.
type Registry[T any] struct {
	mu    sync.Mutex
	items map[int]T
}

// Open returns resource registered under key, creating it with create when absent.
func (r *Registry[T]) Open(key int, create func() (T, error)) (T, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[key]; ok {
		return existing, false, nil
	}
	item, err := create()
	if err != nil {
		var zero T
		return zero, false, fmt.Errorf("failed to create shared resource %d: %w", key, err)
	}
	r.items[key] = item
	return item, true, nil
}

// Get returns resource registered under key.
func (r *Registry[T]) Get(key int) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[key]
	return item, ok
}

// Destroy removes the resource under key, calling release on it when set.
func (r *Registry[T]) Destroy(key int, release func(T) error) error {
	r.mu.Lock()
	item, ok := r.items[key]
	delete(r.items, key)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, key)
	}
	if release != nil {
		return release(item)
	}
	return nil
}

// Len returns the number of live resources.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[int]T)}
}

// States is the process-wide namespace of shared state regions.
var States = NewRegistry[*State]()
