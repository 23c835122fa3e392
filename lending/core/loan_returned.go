package core

import (
	"time"
)

// LoanReturnedEventType is the event type identifier.
const LoanReturnedEventType = "LoanReturned"

// LoanReturned represents when a borrowed copy comes back to the library.
type LoanReturned struct {
	LoanID     LoanIDString
	MemberID   MemberIDString
	CopyID     CopyIDString
	TitleID    TitleIDString
	OccurredAt OccurredAtTS
}

// BuildLoanReturned creates a new LoanReturned event.
func BuildLoanReturned(
	loanID LoanIDString,
	memberID MemberIDString,
	copyID CopyIDString,
	titleID TitleIDString,
	occurredAt time.Time,
) LoanReturned {

	return LoanReturned{
		LoanID:     loanID,
		MemberID:   memberID,
		CopyID:     copyID,
		TitleID:    titleID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanReturned) EventType() string {
	return LoanReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}
