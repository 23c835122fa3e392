package titlesonhold

import (
	"slices"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

// ProjectTitlesOnHold implements the query logic for finding lapsed holds
// across all titles. This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: The reservation lifecycle events of all titles
//	WHEN: TitlesOnHold query is executed
//	THEN: TitlesOnHold struct is returned listing every hold whose pickup
//	window passed before AsOf, grouped by title
//	EXCLUDES: Holds that were claimed, cancelled, or already expired
func ProjectTitlesOnHold(history core.DomainEvents, query Query) TitlesOnHold {
	openHolds := make(map[core.ReservationIDString]core.ReservationFulfilled)
	holdOrder := make([]core.ReservationIDString, 0)

	for _, event := range history {
		switch e := event.(type) {
		case core.ReservationFulfilled:
			if _, seen := openHolds[e.ReservationID]; !seen {
				holdOrder = append(holdOrder, e.ReservationID)
			}
			openHolds[e.ReservationID] = e

		case core.ReservationExpired:
			delete(openHolds, e.ReservationID)

		case core.ReservationCancelled:
			delete(openHolds, e.ReservationID)

		case core.LoanOpened:
			// a checkout of the held copy by the holder claims the hold
			for reservationID, hold := range openHolds {
				if hold.CopyID == e.CopyID && hold.MemberID == e.MemberID {
					delete(openHolds, reservationID)
				}
			}
		}
	}

	result := TitlesOnHold{}
	seenTitles := make(map[core.TitleIDString]struct{})

	for _, reservationID := range holdOrder {
		hold, open := openHolds[reservationID]
		if !open || !hold.HoldUntil.Before(query.AsOf) {
			continue
		}

		result.LapsedHolds = append(result.LapsedHolds, LapsedHold{
			TitleID:       hold.TitleID,
			ReservationID: hold.ReservationID,
			MemberID:      hold.MemberID,
			CopyID:        hold.CopyID,
			HoldUntil:     hold.HoldUntil,
		})

		if _, seen := seenTitles[hold.TitleID]; !seen {
			seenTitles[hold.TitleID] = struct{}{}
			result.TitleIDs = append(result.TitleIDs, hold.TitleID)
		}
	}

	slices.Sort(result.TitleIDs)

	return result
}

// BuildEventFilter creates the filter for querying the reservation lifecycle
// events of all titles. No predicates are needed; the scheduler scans
// everything.
func BuildEventFilter() eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.LoanOpenedEventType,
			core.ReservationCancelledEventType,
			core.ReservationFulfilledEventType,
			core.ReservationExpiredEventType,
		).
		Finalize()
}
