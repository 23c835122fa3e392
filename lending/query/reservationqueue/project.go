package reservationqueue

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

// ProjectReservationQueue implements the query logic for a title's waiting
// queue. This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: A title with TitleID
//	WHEN: ReservationQueue query is executed
//	THEN: ReservationQueue struct is returned with queue positions derived
//	from placement order among still-active reservations
//	EXCLUDES: Cancelled, expired, and claimed reservations
func ProjectReservationQueue(history core.DomainEvents, query Query) ReservationQueue {
	titleID := query.TitleID.String()
	title := core.ProjectTitleCirculation(history, titleID)

	result := ReservationQueue{
		TitleID:         titleID,
		AvailableCopies: len(title.AvailableCopies()),
	}

	for position, reservation := range title.ActiveReservations() {
		result.Waiting = append(result.Waiting, QueueEntry{
			ReservationID: reservation.ReservationID,
			MemberID:      reservation.MemberID,
			Position:      position + 1,
			PlacedAt:      reservation.PlacedAt,
		})
	}

	for _, hold := range title.OpenHolds() {
		result.Holds = append(result.Holds, HoldEntry{
			ReservationID: hold.ReservationID,
			MemberID:      hold.MemberID,
			CopyID:        hold.CopyID,
			HoldUntil:     hold.HoldUntil,
		})
	}

	return result
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
