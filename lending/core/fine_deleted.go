package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// FineDeletedEventType is the event type identifier.
const FineDeletedEventType = "FineDeleted"

// FineDeleted represents when a pending fine is removed because it was
// issued in error.
type FineDeleted struct {
	FineID     FineIDString
	MemberID   MemberIDString
	LoanID     LoanIDString
	Amount     decimal.Decimal
	OccurredAt OccurredAtTS
}

// BuildFineDeleted creates a new FineDeleted event.
func BuildFineDeleted(
	fineID FineIDString,
	memberID MemberIDString,
	loanID LoanIDString,
	amount decimal.Decimal,
	occurredAt time.Time,
) FineDeleted {

	return FineDeleted{
		FineID:     fineID,
		MemberID:   memberID,
		LoanID:     loanID,
		Amount:     amount,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e FineDeleted) EventType() string {
	return FineDeletedEventType
}

// HasOccurredAt returns when this event occurred.
func (e FineDeleted) HasOccurredAt() time.Time {
	return e.OccurredAt
}
