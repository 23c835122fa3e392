package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// FineWaivedEventType is the event type identifier.
const FineWaivedEventType = "FineWaived"

// FineWaived represents when a pending fine is forgiven by staff.
type FineWaived struct {
	FineID     FineIDString
	MemberID   MemberIDString
	LoanID     LoanIDString
	Amount     decimal.Decimal
	OccurredAt OccurredAtTS
}

// BuildFineWaived creates a new FineWaived event.
func BuildFineWaived(
	fineID FineIDString,
	memberID MemberIDString,
	loanID LoanIDString,
	amount decimal.Decimal,
	occurredAt time.Time,
) FineWaived {

	return FineWaived{
		FineID:     fineID,
		MemberID:   memberID,
		LoanID:     loanID,
		Amount:     amount,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e FineWaived) EventType() string {
	return FineWaivedEventType
}

// HasOccurredAt returns when this event occurred.
func (e FineWaived) HasOccurredAt() time.Time {
	return e.OccurredAt
}
