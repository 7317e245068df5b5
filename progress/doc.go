// Package progress keeps aggregated counters for a marking run: exams
// loaded, questions claimed and marked, rubric corrections and workers that
// exited. The tracker travels in the run context so every component can
// update it without a global registry.
package progress
