package core

import (
	"time"
)

// CopyMarkedDamagedEventType is the event type identifier.
const CopyMarkedDamagedEventType = "CopyMarkedDamaged"

// CopyMarkedDamaged represents when a returned copy is flagged as damaged
// and taken out of the lendable pool.
type CopyMarkedDamaged struct {
	CopyID     CopyIDString
	TitleID    TitleIDString
	LoanID     LoanIDString
	OccurredAt OccurredAtTS
}

// BuildCopyMarkedDamaged creates a new CopyMarkedDamaged event.
func BuildCopyMarkedDamaged(copyID CopyIDString, titleID TitleIDString, loanID LoanIDString, occurredAt time.Time) CopyMarkedDamaged {
	return CopyMarkedDamaged{
		CopyID:     copyID,
		TitleID:    titleID,
		LoanID:     loanID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e CopyMarkedDamaged) EventType() string {
	return CopyMarkedDamagedEventType
}

// HasOccurredAt returns when this event occurred.
func (e CopyMarkedDamaged) HasOccurredAt() time.Time {
	return e.OccurredAt
}
