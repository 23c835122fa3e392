package issuefine

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/shell"
)

// CommandHandler orchestrates the complete command processing workflow:
// Query -> Unmarshal -> Decide -> Append, with retry on concurrency
// conflicts. Issued fines are recorded on the audit trail when a recorder is
// configured.
type CommandHandler struct {
	eventLog     shell.EventLog
	audit        shell.AuditRecorder
	logger       shell.ContextualLogger
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithAuditRecorder sets the recorder for the staff audit trail.
func WithAuditRecorder(audit shell.AuditRecorder) Option {
	return func(h *CommandHandler) {
		h.audit = audit
	}
}

// WithContextualLogger sets the logger used for non-fatal audit failures.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(eventLog shell.EventLog, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventLog: eventLog,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	if err == nil && !isIdempotent {
		h.recordAudit(ctx, command)
	}

	if isIdempotent {
		return shell.NewIdempotentResult(retryMetrics), err
	}

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	filter := BuildEventFilter(command.FineID, command.MemberID)

	ctx = eventlog.WithStrongConsistency(ctx)

	entries, maxSequence, err := h.eventLog.Query(ctx, filter)
	if err != nil {
		return false, err
	}

	history, err := shell.DomainEventsFrom(entries)
	if err != nil {
		return false, err
	}

	result := Decide(history, command)

	if !result.HasEventsToAppend() {
		return true, nil
	}

	uid := uuid.New()
	eventMetadata := shell.BuildEventMetadata(uid, uid, uid)

	toAppend, marshalErr := shell.EntriesFrom(result.Events, eventMetadata)
	if marshalErr != nil {
		return false, marshalErr
	}

	appendErr := h.eventLog.Append(ctx, filter, maxSequence, toAppend[0], toAppend[1:]...)
	if appendErr != nil {
		return false, appendErr
	}

	return false, result.HasError()
}

// recordAudit writes the fine issuance to the audit trail. Failures are
// logged and never affect the command outcome.
func (h CommandHandler) recordAudit(ctx context.Context, command Command) {
	if h.audit == nil {
		return
	}

	entry := shell.AuditEntry{
		Action:    command.CommandType(),
		SubjectID: command.FineID.String(),
		Detail:    command.Description,
	}

	if auditErr := h.audit.Record(ctx, entry); auditErr != nil {
		if h.logger != nil {
			h.logger.WarnContext(ctx, "audit record failed",
				"action", entry.Action,
				"subject_id", entry.SubjectID,
				"error", auditErr.Error())
		}
	}
}
