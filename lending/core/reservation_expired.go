package core

import (
	"time"
)

// ReservationExpiredEventType is the event type identifier.
const ReservationExpiredEventType = "ReservationExpired"

// ReservationExpired represents when a fulfilled reservation lapses because
// the member did not pick up the held copy in time.
type ReservationExpired struct {
	ReservationID ReservationIDString
	MemberID      MemberIDString
	TitleID       TitleIDString
	CopyID        CopyIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationExpired creates a new ReservationExpired event.
func BuildReservationExpired(
	reservationID ReservationIDString,
	memberID MemberIDString,
	titleID TitleIDString,
	copyID CopyIDString,
	occurredAt time.Time,
) ReservationExpired {

	return ReservationExpired{
		ReservationID: reservationID,
		MemberID:      memberID,
		TitleID:       titleID,
		CopyID:        copyID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationExpired) EventType() string {
	return ReservationExpiredEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationExpired) HasOccurredAt() time.Time {
	return e.OccurredAt
}
