package idgen

import "github.com/google/uuid"

// NewFunc returns a new run identifier.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique run identifier.
func New() string { return NewFunc() }
