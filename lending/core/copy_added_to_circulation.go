package core

import (
	"time"
)

// CopyAddedToCirculationEventType is the event type identifier.
const CopyAddedToCirculationEventType = "CopyAddedToCirculation"

// CopyAddedToCirculation represents when a physical copy of a title becomes
// available for lending.
type CopyAddedToCirculation struct {
	CopyID     CopyIDString
	TitleID    TitleIDString
	ISBN       ISBNString
	TitleName  string
	Authors    string
	OccurredAt OccurredAtTS
}

// BuildCopyAddedToCirculation creates a new CopyAddedToCirculation event.
func BuildCopyAddedToCirculation(
	copyID CopyIDString,
	titleID TitleIDString,
	isbn ISBNString,
	titleName string,
	authors string,
	occurredAt time.Time,
) CopyAddedToCirculation {

	return CopyAddedToCirculation{
		CopyID:     copyID,
		TitleID:    titleID,
		ISBN:       isbn,
		TitleName:  titleName,
		Authors:    authors,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e CopyAddedToCirculation) EventType() string {
	return CopyAddedToCirculationEventType
}

// HasOccurredAt returns when this event occurred.
func (e CopyAddedToCirculation) HasOccurredAt() time.Time {
	return e.OccurredAt
}
