package assessoverduefine

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
	"github.com/shelfwise/circulation-go/lending/shell"
)

// CommandHandler orchestrates the complete command processing workflow:
// Query -> Unmarshal -> Decide -> Append, with retry on concurrency
// conflicts. Re-running the sweep after a conflict re-projects the loan, so
// a fine that was issued meanwhile is never duplicated.
type CommandHandler struct {
	eventLog     shell.EventLog
	policy       core.Policy
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithPolicy overrides the default circulation policy.
func WithPolicy(policy core.Policy) Option {
	return func(h *CommandHandler) {
		h.policy = policy
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
		policy:   core.DefaultPolicy(),
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
	filter := BuildEventFilter(command.LoanID)

	ctx = eventlog.WithStrongConsistency(ctx)

	entries, maxSequence, err := h.eventLog.Query(ctx, filter)
	if err != nil {
		return false, err
	}

	history, err := shell.DomainEventsFrom(entries)
	if err != nil {
		return false, err
	}

	result := Decide(history, command, h.policy)

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
