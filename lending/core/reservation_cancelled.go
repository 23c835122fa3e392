package core

import (
	"time"
)

// ReservationCancelledEventType is the event type identifier.
const ReservationCancelledEventType = "ReservationCancelled"

// ReservationCancelled represents when a member leaves the waiting queue.
type ReservationCancelled struct {
	ReservationID ReservationIDString
	MemberID      MemberIDString
	TitleID       TitleIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationCancelled creates a new ReservationCancelled event.
func BuildReservationCancelled(
	reservationID ReservationIDString,
	memberID MemberIDString,
	titleID TitleIDString,
	occurredAt time.Time,
) ReservationCancelled {

	return ReservationCancelled{
		ReservationID: reservationID,
		MemberID:      memberID,
		TitleID:       titleID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationCancelled) EventType() string {
	return ReservationCancelledEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationCancelled) HasOccurredAt() time.Time {
	return e.OccurredAt
}
