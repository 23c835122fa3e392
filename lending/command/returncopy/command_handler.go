package returncopy

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
	"github.com/shelfwise/circulation-go/lending/shell"
)

// CommandHandler orchestrates the complete command processing workflow in
// two phases: first the loan is resolved to its copy and title, then the
// full decision stream is queried and the return decided. All resulting
// events are appended atomically under one optimistic guard.
type CommandHandler struct {
	eventLog     shell.EventLog
	policy       core.Policy
	notifier     shell.NotificationDispatcher
	logger       shell.ContextualLogger
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

// WithNotifier sets the dispatcher informed when a return fulfills a
// reservation.
func WithNotifier(notifier shell.NotificationDispatcher) Option {
	return func(h *CommandHandler) {
		h.notifier = notifier
	}
}

// WithContextualLogger sets the logger used for non-fatal notification
// failures.
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
	var fulfilled *core.ReservationFulfilled

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, fulfilledEvent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent
		fulfilled = fulfilledEvent

		return execErr
	}, h.retryOptions...)

	if err == nil && fulfilled != nil {
		h.notifyHoldReady(ctx, *fulfilled)
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
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, *core.ReservationFulfilled, error) {
	ctx = eventlog.WithStrongConsistency(ctx)

	loan, err := h.resolveLoan(ctx, command)
	if err != nil {
		return false, nil, err
	}

	filter := BuildEventFilter(command.LoanID, loan.TitleID)

	entries, maxSequence, err := h.eventLog.Query(ctx, filter)
	if err != nil {
		return false, nil, err
	}

	history, err := shell.DomainEventsFrom(entries)
	if err != nil {
		return false, nil, err
	}

	result := Decide(history, command, h.policy)

	if !result.HasEventsToAppend() {
		return true, nil, nil
	}

	uid := uuid.New()
	eventMetadata := shell.BuildEventMetadata(uid, uid, uid)

	toAppend, marshalErr := shell.EntriesFrom(result.Events, eventMetadata)
	if marshalErr != nil {
		return false, nil, marshalErr
	}

	appendErr := h.eventLog.Append(ctx, filter, maxSequence, toAppend[0], toAppend[1:]...)
	if appendErr != nil {
		return false, nil, appendErr
	}

	var fulfilled *core.ReservationFulfilled
	for _, event := range result.Events {
		if e, ok := event.(core.ReservationFulfilled); ok {
			fulfilled = &e
		}
	}

	return false, fulfilled, result.HasError()
}

// resolveLoan queries the loan events alone to learn which member, copy, and
// title the loan belongs to.
func (h CommandHandler) resolveLoan(ctx context.Context, command Command) (core.LoanState, error) {
	entries, _, err := h.eventLog.Query(ctx, BuildResolveFilter(command.LoanID))
	if err != nil {
		return core.LoanState{}, err
	}

	history, err := shell.DomainEventsFrom(entries)
	if err != nil {
		return core.LoanState{}, err
	}

	loan := core.ProjectLoan(history, command.LoanID.String())
	if !loan.Exists {
		return core.LoanState{}, core.ErrNotFound
	}

	return loan, nil
}

// notifyHoldReady informs the member whose reservation was just fulfilled.
// Delivery failures are logged and never affect the command outcome.
func (h CommandHandler) notifyHoldReady(ctx context.Context, fulfilled core.ReservationFulfilled) {
	if h.notifier == nil {
		return
	}

	payload, err := json.Marshal(fulfilled)
	if err != nil {
		payload = nil
	}

	if notifyErr := h.notifier.Notify(ctx, fulfilled.MemberID, shell.NotificationReservationReady, payload); notifyErr != nil {
		if h.logger != nil {
			h.logger.WarnContext(ctx, "reservation ready notification failed",
				"member_id", fulfilled.MemberID,
				"reservation_id", fulfilled.ReservationID,
				"error", notifyErr.Error())
		}
	}
}
