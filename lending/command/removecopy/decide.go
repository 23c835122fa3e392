package removecopy

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonCopyOnLoan = "copy is currently on loan"
	failureReasonCopyHeld   = "copy is held for a reservation"
)

// Decide implements the business logic for removing a copy from circulation.
//
// Business Rules:
//
//	GIVEN: A copy with CopyID belonging to title with TitleID
//	WHEN: RemoveCopy command is received
//	THEN: CopyRemovedFromCirculation event is generated
//	ERROR: "copy is currently on loan" if the copy has an open loan
//	ERROR: "copy is held for a reservation" if the copy is held for pickup
//	IDEMPOTENCY: If the copy is not in circulation, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	title := core.ProjectTitleCirculation(history, command.TitleID.String())

	cp, found := title.Copies[command.CopyID.String()]
	if !found || !cp.InCirculation {
		return core.IdempotentDecision()
	}

	switch cp.Status() {
	case core.CopyStatusOnLoan:
		reasons := []string{failureReasonCopyOnLoan}
		event := core.BuildOperationDeclined(commandType, command.CopyID.String(), reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrInvalidStateTransition, reasons))

	case core.CopyStatusReserved:
		reasons := []string{failureReasonCopyHeld}
		event := core.BuildOperationDeclined(commandType, command.CopyID.String(), reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrInvalidStateTransition, reasons))
	}

	return core.SuccessDecision(
		core.BuildCopyRemovedFromCirculation(
			command.CopyID.String(),
			command.TitleID.String(),
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for querying all events of the title
// the copy belongs to. The full title stream is needed to derive the copy's
// loan and hold state.
func BuildEventFilter(titleID uuid.UUID) eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.CopyAddedToCirculationEventType,
			core.CopyRemovedFromCirculationEventType,
			core.CopyMarkedDamagedEventType,
			core.LoanOpenedEventType,
			core.LoanReturnedEventType,
			core.LoanReportedLostEventType,
			core.ReservationPlacedEventType,
			core.ReservationCancelledEventType,
			core.ReservationFulfilledEventType,
			core.ReservationExpiredEventType,
		).
		AndAnyPredicateOf(
			eventlog.P("TitleID", titleID.String()),
		).
		Finalize()
}
