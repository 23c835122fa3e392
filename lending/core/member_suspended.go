package core

import (
	"time"
)

// MemberSuspendedEventType is the event type identifier.
const MemberSuspendedEventType = "MemberSuspended"

// MemberSuspended represents when a member loses borrowing privileges.
type MemberSuspended struct {
	MemberID   MemberIDString
	Reason     string
	OccurredAt OccurredAtTS
}

// BuildMemberSuspended creates a new MemberSuspended event.
func BuildMemberSuspended(memberID MemberIDString, reason string, occurredAt time.Time) MemberSuspended {
	return MemberSuspended{
		MemberID:   memberID,
		Reason:     reason,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e MemberSuspended) EventType() string {
	return MemberSuspendedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberSuspended) HasOccurredAt() time.Time {
	return e.OccurredAt
}
