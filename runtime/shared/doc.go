// Package shared holds the marking state visible to every worker: the
// rubric, the currently loaded exam, its question flags, the exam cursor and
// the finished latch.
//
// State is a plain fixed-size record. None of its methods are atomic;
// callers bracket reads and writes with the protection domain guarding the
// field (see service/lock). Registry models the process-wide namespace in
// which such regions are created by key and destroyed by the supervisor.
package shared
