package deletefine

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonFineNotFound = "fine does not exist"
	failureReasonFineSettled  = "fine is not pending"
)

// Decide implements the business logic for deleting a fine issued in error.
// Only pending fines can be deleted; settled fines are part of the financial
// record.
//
// Business Rules:
//
//	GIVEN: A fine with FineID
//	WHEN: DeleteFine command is received
//	THEN: FineDeleted event is generated
//	ERROR: "fine does not exist" if the fine is unknown
//	ERROR: "fine is not pending" if the fine was paid or waived
//	IDEMPOTENCY: If the fine is already deleted, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	fineID := command.FineID.String()
	fine := core.ProjectFine(history, fineID)

	if !fine.Exists {
		reasons := []string{failureReasonFineNotFound}
		event := core.BuildOperationDeclined(commandType, fineID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrNotFound, reasons))
	}

	switch fine.Status {
	case core.FineStatusDeleted:
		return core.IdempotentDecision()

	case core.FineStatusPaid, core.FineStatusWaived:
		reasons := []string{failureReasonFineSettled}
		event := core.BuildOperationDeclined(commandType, fineID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrInvalidStateTransition, reasons))
	}

	return core.SuccessDecision(
		core.BuildFineDeleted(fineID, fine.MemberID, fine.LoanID, fine.Amount, command.OccurredAt),
	)
}

// BuildEventFilter creates the filter for querying all events of one fine.
func BuildEventFilter(fineID uuid.UUID) eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.FineIssuedEventType,
			core.FinePaidEventType,
			core.FineWaivedEventType,
			core.FineDeletedEventType,
		).
		AndAnyPredicateOf(
			eventlog.P("FineID", fineID.String()),
		).
		Finalize()
}
