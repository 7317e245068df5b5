package marking

import (
	"sort"
	"sync"
)

// Claim records a question handed to a worker.
type Claim struct {
	Seq       int
	ExamIndex int
	StudentID int
	Question  int
	Worker    int
}

// Ledger records every claim in claim order. It is safe for concurrent use.
type Ledger struct {
	mux    sync.Mutex
	claims []Claim
}

// Record appends a claim and returns its sequence number, starting at 1.
func (l *Ledger) Record(claim Claim) int {
	if l == nil {
		return 0
	}
	l.mux.Lock()
	defer l.mux.Unlock()
	claim.Seq = len(l.claims) + 1
	l.claims = append(l.claims, claim)
	return claim.Seq
}

// Claims returns recorded claims.
func (l *Ledger) Claims() []Claim {
	if l == nil {
		return nil
	}
	l.mux.Lock()
	defer l.mux.Unlock()
	return append([]Claim(nil), l.claims...)
}

// ByExam groups claims by exam index.
func (l *Ledger) ByExam() map[int][]Claim {
	ret := map[int][]Claim{}
	for _, claim := range l.Claims() {
		ret[claim.ExamIndex] = append(ret[claim.ExamIndex], claim)
	}
	return ret
}

// Exams returns claimed exam indexes in ascending order.
func (l *Ledger) Exams() []int {
	byExam := l.ByExam()
	ret := make([]int, 0, len(byExam))
	for index := range byExam {
		ret = append(ret, index)
	}
	sort.Ints(ret)
	return ret
}

// Duplicates returns claims of a question already claimed for the same exam.
func (l *Ledger) Duplicates() []Claim {
	type key struct{ exam, question int }
	seen := map[key]bool{}
	var ret []Claim
	for _, claim := range l.Claims() {
		k := key{claim.ExamIndex, claim.Question}
		if seen[k] {
			ret = append(ret, claim)
			continue
		}
		seen[k] = true
	}
	return ret
}
