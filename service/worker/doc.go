// Package worker runs the per assistant control loop.
//
// Every iteration a worker checks termination and advancement in a single
// SHARED critical section:
//
//   - a latched finished flag makes the worker exit
//   - the sentinel exam latches the flag and the worker exits
//   - a fully marked exam advances the cursor and loads the next exam, or
//     latches the flag once the cursor reaches the exam count
//   - otherwise the worker reviews the rubric and marks questions
//
// The same loop drives the unsynchronized baseline; only the locker differs.
package worker
