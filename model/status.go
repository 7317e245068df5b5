package model

import (
	"math/rand"
	"strconv"
)

// QuestionStatus represents marking status of a single question.
type QuestionStatus int

const (
	// Unmarked question is available to be claimed.
	Unmarked QuestionStatus = iota
	// Marked question has been claimed; it stays marked until the next exam load.
	Marked
)

func (s QuestionStatus) String() string {
	switch s {
	case Unmarked:
		return "unmarked"
	case Marked:
		return "marked"
	}
	return "status(" + strconv.Itoa(int(s)) + ")"
}

// Assistant identifies a worker and owns its random source; a *rand.Rand is
// not safe for concurrent use so every worker carries its own.
type Assistant struct {
	ID   int
	Rand *rand.Rand
}

// NewAssistant creates an assistant seeded with seed+id.
func NewAssistant(id int, seed int64) *Assistant {
	return &Assistant{ID: id, Rand: rand.New(rand.NewSource(seed + int64(id)))}
}
