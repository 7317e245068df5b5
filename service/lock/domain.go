package lock

import "strconv"

// Domain identifies a protection domain.
type Domain int

const (
	// Rubric guards rubric text mutation and its persistence.
	Rubric Domain = iota
	// Questions guards question marking status mutation.
	Questions
	// Shared guards student id, exam index, question flags and the finished latch.
	Shared
)

// NumDomains is the number of protection domains.
const NumDomains = 3

// Domains lists all protection domains.
var Domains = [NumDomains]Domain{Rubric, Questions, Shared}

func (d Domain) String() string {
	switch d {
	case Rubric:
		return "RUBRIC"
	case Questions:
		return "QUESTIONS"
	case Shared:
		return "SHARED"
	}
	return "domain(" + strconv.Itoa(int(d)) + ")"
}

func (d Domain) valid() bool {
	return d >= 0 && int(d) < NumDomains
}
