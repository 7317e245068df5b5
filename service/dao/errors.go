package dao

import "errors"

// Sentinel errors allow callers to detect resource conditions via errors.Is
// instead of string comparisons.

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID indicates that the supplied index or location is invalid.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrEmpty is returned when a resource exists but holds no readable line.
	ErrEmpty = errors.New("dao: empty resource")
)
