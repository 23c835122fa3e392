package waivefine

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonFineNotFound = "fine does not exist"
	failureReasonFineSettled  = "fine is not pending"
)

// Decide implements the business logic for waiving a fine. Settlement is
// final: a fine settled one way cannot be settled another.
//
// Business Rules:
//
//	GIVEN: A fine with FineID
//	WHEN: WaiveFine command is received
//	THEN: FineWaived event is generated
//	ERROR: "fine does not exist" if the fine is unknown
//	ERROR: "fine is not pending" if the fine was already paid, waived or deleted
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	fineID := command.FineID.String()
	fine := core.ProjectFine(history, fineID)

	if !fine.Exists {
		reasons := []string{failureReasonFineNotFound}
		event := core.BuildOperationDeclined(commandType, fineID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrNotFound, reasons))
	}

	if fine.Status != core.FineStatusPending {
		reasons := []string{failureReasonFineSettled}
		event := core.BuildOperationDeclined(commandType, fineID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrInvalidStateTransition, reasons))
	}

	return core.SuccessDecision(
		core.BuildFineWaived(fineID, fine.MemberID, fine.LoanID, fine.Amount, command.OccurredAt),
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
