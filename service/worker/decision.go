package worker

import "fmt"

// Decision is the outcome of one control step.
type Decision int

const (
	// Work means the current exam still has unclaimed questions.
	Work Decision = iota
	// Advanced means the next exam was loaded; no work is done this iteration.
	Advanced
	// Retry means the next exam could not be loaded; the cursor did not move.
	Retry
	// Exit means the run is finished for this worker.
	Exit
)

func (d Decision) String() string {
	switch d {
	case Work:
		return "work"
	case Advanced:
		return "advanced"
	case Retry:
		return "retry"
	case Exit:
		return "exit"
	}
	return fmt.Sprintf("decision(%d)", int(d))
}
