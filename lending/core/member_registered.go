package core

import (
	"time"
)

// MemberRegisteredEventType is the event type identifier.
const MemberRegisteredEventType = "MemberRegistered"

// MemberRegistered represents when a member joins the library.
type MemberRegistered struct {
	MemberID            MemberIDString
	Name                string
	MembershipExpiresAt OccurredAtTS
	OccurredAt          OccurredAtTS
}

// BuildMemberRegistered creates a new MemberRegistered event.
func BuildMemberRegistered(
	memberID MemberIDString,
	name string,
	membershipExpiresAt time.Time,
	occurredAt time.Time,
) MemberRegistered {

	return MemberRegistered{
		MemberID:            memberID,
		Name:                name,
		MembershipExpiresAt: ToOccurredAt(membershipExpiresAt),
		OccurredAt:          ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e MemberRegistered) EventType() string {
	return MemberRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}
