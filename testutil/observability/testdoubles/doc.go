// Package testdoubles provides test doubles (spies) for the observability
// and side-effect interfaces the journal and command handlers depend on:
//   - ContextualLoggerSpy: captures structured logging with context
//   - MetricsCollectorSpy: captures metrics recording calls for verification
//   - NotificationDispatcherSpy: captures member notifications
//   - AuditRecorderSpy: captures audit trail entries
//
// These test doubles enable testing of instrumentation and post-commit side
// effects without requiring actual telemetry or delivery backends.
package testdoubles
