package core

import (
	"time"
)

// LoanOpenedEventType is the event type identifier.
const LoanOpenedEventType = "LoanOpened"

// LoanOpened represents when a copy is checked out to a member.
type LoanOpened struct {
	LoanID     LoanIDString
	MemberID   MemberIDString
	CopyID     CopyIDString
	TitleID    TitleIDString
	DueDate    OccurredAtTS
	OccurredAt OccurredAtTS
}

// BuildLoanOpened creates a new LoanOpened event.
func BuildLoanOpened(
	loanID LoanIDString,
	memberID MemberIDString,
	copyID CopyIDString,
	titleID TitleIDString,
	dueDate time.Time,
	occurredAt time.Time,
) LoanOpened {

	return LoanOpened{
		LoanID:     loanID,
		MemberID:   memberID,
		CopyID:     copyID,
		TitleID:    titleID,
		DueDate:    ToOccurredAt(dueDate),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanOpened) EventType() string {
	return LoanOpenedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanOpened) HasOccurredAt() time.Time {
	return e.OccurredAt
}
