package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinePaidEventType is the event type identifier.
const FinePaidEventType = "FinePaid"

// FinePaid represents when a pending fine is settled by payment.
type FinePaid struct {
	FineID     FineIDString
	MemberID   MemberIDString
	LoanID     LoanIDString
	Amount     decimal.Decimal
	OccurredAt OccurredAtTS
}

// BuildFinePaid creates a new FinePaid event.
func BuildFinePaid(
	fineID FineIDString,
	memberID MemberIDString,
	loanID LoanIDString,
	amount decimal.Decimal,
	occurredAt time.Time,
) FinePaid {

	return FinePaid{
		FineID:     fineID,
		MemberID:   memberID,
		LoanID:     loanID,
		Amount:     amount,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e FinePaid) EventType() string {
	return FinePaidEventType
}

// HasOccurredAt returns when this event occurred.
func (e FinePaid) HasOccurredAt() time.Time {
	return e.OccurredAt
}
