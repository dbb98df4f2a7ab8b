// Package pool provides lifecycle, admission, and dispatch coordination for a
// fixed set of speech-recognition worker instances. It is structured into
// small files by concern:
//
//   - pool.go: core Pool type, constructor, instance selection and release.
//   - config.go: Config and package defaults applied at construction.
//   - types.go: internal state types (Status, Instance, task).
//   - errors.go: error types and helpers (IsQueueFull, IsShutdown, ...).
//   - queue.go: bounded FIFO admission queue.
//   - load.go: concurrent engine warm-up at startup.
//   - dispatch.go: dispatcher loop and per-task retry behavior.
//   - submit.go: Transcribe entry point awaiting a one-shot result.
//   - monitor.go: health and statistics reporting.
//   - recover.go: operator-triggered reload of failed instances.
//   - metrics.go: Prometheus collectors.
//   - events.go: lifecycle event publishing.
//
// External packages should treat this package as the orchestration layer and
// use public methods only (New, Start, Transcribe, Health, Stats, Recover,
// Close). Internal types are subject to change.
package pool
