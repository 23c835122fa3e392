package core

import (
	"time"
)

// LoanReportedLostEventType is the event type identifier.
const LoanReportedLostEventType = "LoanReportedLost"

// LoanReportedLost represents when a borrowed copy is reported lost, closing
// the loan and retiring the copy.
type LoanReportedLost struct {
	LoanID     LoanIDString
	MemberID   MemberIDString
	CopyID     CopyIDString
	TitleID    TitleIDString
	OccurredAt OccurredAtTS
}

// BuildLoanReportedLost creates a new LoanReportedLost event.
func BuildLoanReportedLost(
	loanID LoanIDString,
	memberID MemberIDString,
	copyID CopyIDString,
	titleID TitleIDString,
	occurredAt time.Time,
) LoanReportedLost {

	return LoanReportedLost{
		LoanID:     loanID,
		MemberID:   memberID,
		CopyID:     copyID,
		TitleID:    titleID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanReportedLost) EventType() string {
	return LoanReportedLostEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanReportedLost) HasOccurredAt() time.Time {
	return e.OccurredAt
}
