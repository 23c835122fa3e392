package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// FineIssuedEventType is the event type identifier.
const FineIssuedEventType = "FineIssued"

// Fine type classifiers.
const (
	FineTypeOverdue = "Overdue"
	FineTypeLost    = "Lost"
	FineTypeDamaged = "Damaged"
	FineTypeOther   = "Other"
)

// FineIssued represents when a fine is charged to a member. LoanID is empty
// for fines not tied to a loan.
type FineIssued struct {
	FineID      FineIDString
	MemberID    MemberIDString
	LoanID      LoanIDString
	FineType    string
	Amount      decimal.Decimal
	Description string
	OccurredAt  OccurredAtTS
}

// BuildFineIssued creates a new FineIssued event.
func BuildFineIssued(
	fineID FineIDString,
	memberID MemberIDString,
	loanID LoanIDString,
	fineType string,
	amount decimal.Decimal,
	description string,
	occurredAt time.Time,
) FineIssued {

	return FineIssued{
		FineID:      fineID,
		MemberID:    memberID,
		LoanID:      loanID,
		FineType:    fineType,
		Amount:      amount,
		Description: description,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e FineIssued) EventType() string {
	return FineIssuedEventType
}

// HasOccurredAt returns when this event occurred.
func (e FineIssued) HasOccurredAt() time.Time {
	return e.OccurredAt
}
