package core

import (
	"time"
)

// MemberReinstatedEventType is the event type identifier.
const MemberReinstatedEventType = "MemberReinstated"

// MemberReinstated represents when a suspended member regains borrowing
// privileges.
type MemberReinstated struct {
	MemberID   MemberIDString
	OccurredAt OccurredAtTS
}

// BuildMemberReinstated creates a new MemberReinstated event.
func BuildMemberReinstated(memberID MemberIDString, occurredAt time.Time) MemberReinstated {
	return MemberReinstated{
		MemberID:   memberID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e MemberReinstated) EventType() string {
	return MemberReinstatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberReinstated) HasOccurredAt() time.Time {
	return e.OccurredAt
}
