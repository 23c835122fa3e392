package shell

import (
	"context"

	"github.com/shelfwise/circulation-go/eventlog"
)

// EventLog defines the journal operations the command and query handlers
// depend on. The Postgres engine implements it; tests substitute an
// in-memory double.
type EventLog interface {
	Query(ctx context.Context, filter eventlog.Filter) (
		eventlog.Entries,
		eventlog.MaxSequence,
		error,
	)

	Append(
		ctx context.Context,
		filter eventlog.Filter,
		expectedMaxSequence eventlog.MaxSequence,
		entry eventlog.Entry,
		additionalEntries ...eventlog.Entry,
	) error
}

// Logger re-exports the journal's basic logging interface for handler use.
type Logger = eventlog.Logger

// ContextualLogger re-exports the journal's context-aware logging interface.
type ContextualLogger = eventlog.ContextualLogger

// MetricsCollector re-exports the journal's metrics interface.
type MetricsCollector = eventlog.MetricsCollector

// ContextualMetricsCollector re-exports the journal's context-aware metrics interface.
type ContextualMetricsCollector = eventlog.ContextualMetricsCollector

// Command represents the contract for all command types. The CommandType
// method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process
// commands: retrieving events, unmarshaling, deciding, and appending.
// Handlers return HandlerResult containing business outcomes (idempotency)
// and execution metadata (retry info).
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Notification kinds dispatched to members.
const (
	NotificationReservationReady = "ReservationReady"
	NotificationLoanDueSoon      = "LoanDueSoon"
)

// NotificationDispatcher delivers member-facing notifications after a state
// change has been committed. Delivery failures are logged, never propagated
// into the command outcome.
type NotificationDispatcher interface {
	Notify(ctx context.Context, memberID string, kind string, payload []byte) error
}

// AuditEntry describes one staff-initiated action for the audit trail.
type AuditEntry struct {
	Action    string
	ActorID   string
	SubjectID string
	Detail    string
}

// AuditRecorder records staff actions such as fine waivers and deletions.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}
