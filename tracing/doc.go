// Package tracing integrates OpenTelemetry with the marking run. Worker
// lifetimes, exam loads and rubric corrections are recorded as spans. When
// tracing is not initialised the global no-op provider makes every span free.
package tracing
