package core

import (
	"time"
)

// CopyRemovedFromCirculationEventType is the event type identifier.
const CopyRemovedFromCirculationEventType = "CopyRemovedFromCirculation"

// CopyRemovedFromCirculation represents when a copy is permanently withdrawn
// from lending.
type CopyRemovedFromCirculation struct {
	CopyID     CopyIDString
	TitleID    TitleIDString
	OccurredAt OccurredAtTS
}

// BuildCopyRemovedFromCirculation creates a new CopyRemovedFromCirculation event.
func BuildCopyRemovedFromCirculation(copyID CopyIDString, titleID TitleIDString, occurredAt time.Time) CopyRemovedFromCirculation {
	return CopyRemovedFromCirculation{
		CopyID:     copyID,
		TitleID:    titleID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e CopyRemovedFromCirculation) EventType() string {
	return CopyRemovedFromCirculationEventType
}

// HasOccurredAt returns when this event occurred.
func (e CopyRemovedFromCirculation) HasOccurredAt() time.Time {
	return e.OccurredAt
}
