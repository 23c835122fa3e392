package placereservation

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonMemberNotRegistered = "member is not registered"
	failureReasonMemberSuspended     = "member is suspended"
	failureReasonMembershipExpired   = "membership has expired"
	failureReasonCopiesAvailable     = "title has available copies"
	failureReasonReservationLimit    = "member has reached the active reservation limit"
)

// Decide implements the business logic for placing a reservation.
//
// Business Rules:
//
//	GIVEN: A member with MemberID and a title with TitleID
//	WHEN: PlaceReservation command is received
//	THEN: ReservationPlaced event is generated, entering the queue at the tail
//	ERROR: "member is not registered" / "member is suspended" / "membership has expired"
//	ERROR: "title has available copies" if the member could just check one out
//	ERROR: "member has reached the active reservation limit"
//	IDEMPOTENCY: If the member already has an active reservation for this title,
//	no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	memberID := command.MemberID.String()
	titleID := command.TitleID.String()

	title := core.ProjectTitleCirculation(history, titleID)
	if title.HasActiveReservationFor(memberID) {
		return core.IdempotentDecision()
	}

	standing := core.ProjectMemberStanding(history, memberID, command.OccurredAt)

	var reasons []string

	switch {
	case !standing.Exists:
		reasons = append(reasons, failureReasonMemberNotRegistered)
	case standing.Status == core.MemberStatusSuspended:
		reasons = append(reasons, failureReasonMemberSuspended)
	case standing.Status == core.MemberStatusExpired:
		reasons = append(reasons, failureReasonMembershipExpired)
	}

	if len(reasons) > 0 {
		event := core.BuildOperationDeclined(commandType, memberID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrIneligibleMember, reasons))
	}

	if len(title.AvailableCopies()) > 0 {
		reasons = []string{failureReasonCopiesAvailable}
		event := core.BuildOperationDeclined(commandType, titleID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrValidation, reasons))
	}

	if standing.ActiveReservationCount >= policy.MaxActiveReservations {
		reasons = []string{failureReasonReservationLimit}
		event := core.BuildOperationDeclined(commandType, memberID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrLimitExceeded, reasons))
	}

	return core.SuccessDecision(
		core.BuildReservationPlaced(
			command.ReservationID.String(),
			memberID,
			titleID,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for querying all events related to the
// member and the title which are relevant for this feature.
func BuildEventFilter(memberID uuid.UUID, titleID uuid.UUID) eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.MemberSuspendedEventType,
			core.MemberReinstatedEventType,
			core.CopyAddedToCirculationEventType,
			core.CopyRemovedFromCirculationEventType,
			core.CopyMarkedDamagedEventType,
			core.LoanOpenedEventType,
			core.LoanRenewedEventType,
			core.LoanReturnedEventType,
			core.LoanReportedLostEventType,
			core.ReservationPlacedEventType,
			core.ReservationCancelledEventType,
			core.ReservationFulfilledEventType,
			core.ReservationExpiredEventType,
			core.FineIssuedEventType,
			core.FinePaidEventType,
			core.FineWaivedEventType,
			core.FineDeletedEventType,
		).
		AndAnyPredicateOf(
			eventlog.P("MemberID", memberID.String()),
			eventlog.P("TitleID", titleID.String()),
		).
		Finalize()
}
