package expireholds

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

// Decide implements the business logic for the hold expiry sweep. Every
// lapsed hold is expired and its freed copy offered to the next waiting
// member, all in one atomic append.
//
// Business Rules:
//
//	GIVEN: A title with TitleID
//	WHEN: ExpireHolds command is received
//	THEN: ReservationExpired events are generated for all holds whose
//	HoldUntil has passed, and ReservationFulfilled events hand the freed
//	copies to the next reservations in queue order
//	IDEMPOTENCY: If no hold has lapsed, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	titleID := command.TitleID.String()
	title := core.ProjectTitleCirculation(history, titleID)

	var events core.DomainEvents
	var freedCopies []core.CopyIDString

	for _, hold := range title.OpenHolds() {
		if !hold.HoldUntil.Before(command.OccurredAt) {
			continue
		}

		events = append(events, core.BuildReservationExpired(
			hold.ReservationID,
			hold.MemberID,
			titleID,
			hold.CopyID,
			command.OccurredAt,
		))
		freedCopies = append(freedCopies, hold.CopyID)
	}

	if len(events) == 0 {
		return core.IdempotentDecision()
	}

	waiting := title.ActiveReservations()
	for i, copyID := range freedCopies {
		if i >= len(waiting) {
			break
		}

		events = append(events, core.BuildReservationFulfilled(
			waiting[i].ReservationID,
			waiting[i].MemberID,
			titleID,
			copyID,
			command.OccurredAt.Add(policy.HoldWindow),
			command.OccurredAt,
		))
	}

	return core.SuccessDecision(events...)
}

// BuildEventFilter creates the filter for querying the whole title stream.
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
