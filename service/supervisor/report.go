package supervisor

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/viant/marking/model"
	"github.com/viant/marking/progress"
	"github.com/viant/marking/service/lock"
	"github.com/viant/marking/service/marking"
)

// Report summarises a completed run.
type Report struct {
	RunID          string
	Workers        int
	Unsynchronized bool
	StartedAt      time.Time
	Elapsed        time.Duration

	// FinishedBy is the worker that latched termination, 0 when none did.
	FinishedBy int
	// ExamIndex is the final exam cursor.
	ExamIndex int
	// Claims counts claims per exam index.
	Claims         map[int]int
	ExamsProcessed int
	Duplicates     []marking.Claim
	Corrections    int

	InitialRubric []string
	FinalRubric   []string
	RubricDiff    string
	DiffStats     DiffStats

	Progress     progress.Progress
	Locks        [lock.NumDomains]lock.Stats
	Violations   []lock.Violation
	WorkerErrors map[int]error
}

// Err joins worker errors.
func (r *Report) Err() error {
	ids := make([]int, 0, len(r.WorkerErrors))
	for id := range r.WorkerErrors {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var errs []error
	for _, id := range ids {
		errs = append(errs, fmt.Errorf("worker %d: %w", id, r.WorkerErrors[id]))
	}
	return errors.Join(errs...)
}

// Exams returns claimed exam indexes in ascending order.
func (r *Report) Exams() []int {
	ret := make([]int, 0, len(r.Claims))
	for index := range r.Claims {
		ret = append(ret, index)
	}
	sort.Ints(ret)
	return ret
}

func (r *Report) addClaims(ledger *marking.Ledger) {
	r.Claims = map[int]int{}
	processed := map[int]bool{}
	for _, claim := range ledger.Claims() {
		r.Claims[claim.ExamIndex]++
		if claim.StudentID != model.SentinelStudentID {
			processed[claim.ExamIndex] = true
		}
	}
	r.ExamsProcessed = len(processed)
	r.Duplicates = ledger.Duplicates()
}

func (r *Report) addLocks(monitor *lock.Monitor) {
	for _, domain := range lock.Domains {
		r.Locks[domain] = monitor.Stats(domain)
	}
	r.Violations = monitor.Violations()
}
