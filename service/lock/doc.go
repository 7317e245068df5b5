// Package lock implements the mutual exclusion layer that partitions the
// shared marking state into three protection domains: rubric text, question
// marking status and the shared/general fields.
//
// Each domain is a binary lock. Acquire blocks until the domain is free and
// returns a Guard; releasing the guard frees the domain and unblocks at most
// one waiter. Workers must hold at most one domain at a time; the Monitor
// records any nested acquisition as a discipline violation.
//
//	guard, err := locks.Acquire(ctx, lock.Shared)
//	if err != nil {
//		return err
//	}
//	defer guard.Release()
//
// NewNop returns a locker whose guards never block, used to build the
// unsynchronized baseline.
package lock
