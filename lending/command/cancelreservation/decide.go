package cancelreservation

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonReservationNotFound = "reservation does not exist"
	failureReasonReservationSettled  = "reservation is already settled"
)

// Decide implements the business logic for cancelling a reservation.
// Cancelling a fulfilled hold releases the copy without offering it to the
// next waiter; the next return or the expiry sweep moves the queue along.
//
// Business Rules:
//
//	GIVEN: A reservation with ReservationID
//	WHEN: CancelReservation command is received
//	THEN: ReservationCancelled event is generated
//	ERROR: "reservation is already settled" if it was claimed or expired
//	IDEMPOTENCY: If the reservation is already cancelled, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, titleID core.TitleIDString) core.DecisionResult {
	reservationID := command.ReservationID.String()
	title := core.ProjectTitleCirculation(history, titleID)

	reservation, found := title.ReservationByID(reservationID)
	if !found {
		reasons := []string{failureReasonReservationNotFound}
		event := core.BuildOperationDeclined(commandType, reservationID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrNotFound, reasons))
	}

	switch reservation.Status {
	case core.ReservationStatusCancelled:
		return core.IdempotentDecision()

	case core.ReservationStatusClaimed, core.ReservationStatusExpired:
		reasons := []string{failureReasonReservationSettled}
		event := core.BuildOperationDeclined(commandType, reservationID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrInvalidStateTransition, reasons))
	}

	return core.SuccessDecision(
		core.BuildReservationCancelled(
			reservationID,
			reservation.MemberID,
			titleID,
			command.OccurredAt,
		),
	)
}

// BuildResolveFilter creates the filter for the first phase: resolving the
// reservation's title from the reservation events alone.
func BuildResolveFilter(reservationID uuid.UUID) eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.ReservationPlacedEventType,
			core.ReservationCancelledEventType,
			core.ReservationFulfilledEventType,
			core.ReservationExpiredEventType,
		).
		AndAnyPredicateOf(
			eventlog.P("ReservationID", reservationID.String()),
		).
		Finalize()
}

// BuildEventFilter creates the filter for the decision phase, covering the
// whole title stream so claimed holds are visible.
func BuildEventFilter(titleID core.TitleIDString) eventlog.Filter {
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
			eventlog.P("TitleID", titleID),
		).
		Finalize()
}
