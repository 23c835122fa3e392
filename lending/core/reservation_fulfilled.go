package core

import (
	"time"
)

// ReservationFulfilledEventType is the event type identifier.
const ReservationFulfilledEventType = "ReservationFulfilled"

// ReservationFulfilled represents when a returned copy is offered to the
// member at the head of the queue, to be held until HoldUntil.
type ReservationFulfilled struct {
	ReservationID ReservationIDString
	MemberID      MemberIDString
	TitleID       TitleIDString
	CopyID        CopyIDString
	HoldUntil     OccurredAtTS
	OccurredAt    OccurredAtTS
}

// BuildReservationFulfilled creates a new ReservationFulfilled event.
func BuildReservationFulfilled(
	reservationID ReservationIDString,
	memberID MemberIDString,
	titleID TitleIDString,
	copyID CopyIDString,
	holdUntil time.Time,
	occurredAt time.Time,
) ReservationFulfilled {

	return ReservationFulfilled{
		ReservationID: reservationID,
		MemberID:      memberID,
		TitleID:       titleID,
		CopyID:        copyID,
		HoldUntil:     ToOccurredAt(holdUntil),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationFulfilled) EventType() string {
	return ReservationFulfilledEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationFulfilled) HasOccurredAt() time.Time {
	return e.OccurredAt
}
