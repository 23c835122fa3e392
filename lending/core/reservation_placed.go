package core

import (
	"time"
)

// ReservationPlacedEventType is the event type identifier.
const ReservationPlacedEventType = "ReservationPlaced"

// ReservationPlaced represents when a member joins the waiting queue for a
// title with no available copies.
type ReservationPlaced struct {
	ReservationID ReservationIDString
	MemberID      MemberIDString
	TitleID       TitleIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationPlaced creates a new ReservationPlaced event.
func BuildReservationPlaced(
	reservationID ReservationIDString,
	memberID MemberIDString,
	titleID TitleIDString,
	occurredAt time.Time,
) ReservationPlaced {

	return ReservationPlaced{
		ReservationID: reservationID,
		MemberID:      memberID,
		TitleID:       titleID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationPlaced) EventType() string {
	return ReservationPlacedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationPlaced) HasOccurredAt() time.Time {
	return e.OccurredAt
}
