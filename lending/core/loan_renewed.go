package core

import (
	"time"
)

// LoanRenewedEventType is the event type identifier.
const LoanRenewedEventType = "LoanRenewed"

// LoanRenewed represents when an open loan's due date is extended.
type LoanRenewed struct {
	LoanID     LoanIDString
	MemberID   MemberIDString
	CopyID     CopyIDString
	TitleID    TitleIDString
	NewDueDate OccurredAtTS
	OccurredAt OccurredAtTS
}

// BuildLoanRenewed creates a new LoanRenewed event.
func BuildLoanRenewed(
	loanID LoanIDString,
	memberID MemberIDString,
	copyID CopyIDString,
	titleID TitleIDString,
	newDueDate time.Time,
	occurredAt time.Time,
) LoanRenewed {

	return LoanRenewed{
		LoanID:     loanID,
		MemberID:   memberID,
		CopyID:     copyID,
		TitleID:    titleID,
		NewDueDate: ToOccurredAt(newDueDate),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanRenewed) EventType() string {
	return LoanRenewedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanRenewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}
