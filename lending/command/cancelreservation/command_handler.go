package cancelreservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
	"github.com/shelfwise/circulation-go/lending/shell"
)

// CommandHandler orchestrates the complete command processing workflow in
// two phases: first the reservation is resolved to its title, then the full
// title stream is queried and the cancellation decided.
type CommandHandler struct {
	eventLog     shell.EventLog
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

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
	ctx = eventlog.WithStrongConsistency(ctx)

	titleID, err := h.resolveTitle(ctx, command)
	if err != nil {
		return false, err
	}

	filter := BuildEventFilter(titleID)

	entries, maxSequence, err := h.eventLog.Query(ctx, filter)
	if err != nil {
		return false, err
	}

	history, err := shell.DomainEventsFrom(entries)
	if err != nil {
		return false, err
	}

	result := Decide(history, command, titleID)

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

// resolveTitle queries the reservation events alone to learn which title the
// reservation belongs to.
func (h CommandHandler) resolveTitle(ctx context.Context, command Command) (core.TitleIDString, error) {
	entries, _, err := h.eventLog.Query(ctx, BuildResolveFilter(command.ReservationID))
	if err != nil {
		return "", err
	}

	history, err := shell.DomainEventsFrom(entries)
	if err != nil {
		return "", err
	}

	for _, event := range history {
		if e, ok := event.(core.ReservationPlaced); ok && e.ReservationID == command.ReservationID.String() {
			return e.TitleID, nil
		}
	}

	return "", core.ErrNotFound
}
