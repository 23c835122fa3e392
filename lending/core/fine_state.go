package core

import (
	"github.com/shopspring/decimal"
)

// Fine status values. Payment and waiver settle a fine; settlement is final.
const (
	FineStatusPending = "Pending"
	FineStatusPaid    = "Paid"
	FineStatusWaived  = "Waived"
	FineStatusDeleted = "Deleted"
)

// FineState is the derived state of one fine.
type FineState struct {
	Exists   bool
	FineID   FineIDString
	MemberID MemberIDString
	LoanID   LoanIDString
	FineType string
	Amount   decimal.Decimal
	Status   string
}

// ProjectFine folds the event history into the state of one fine.
func ProjectFine(history DomainEvents, fineID FineIDString) FineState {
	fine := FineState{FineID: fineID, Amount: decimal.Zero}

	for _, event := range history {
		switch e := event.(type) {
		case FineIssued:
			if e.FineID == fineID {
				fine.Exists = true
				fine.MemberID = e.MemberID
				fine.LoanID = e.LoanID
				fine.FineType = e.FineType
				fine.Amount = e.Amount
				fine.Status = FineStatusPending
			}

		case FinePaid:
			if e.FineID == fineID {
				fine.Status = FineStatusPaid
			}

		case FineWaived:
			if e.FineID == fineID {
				fine.Status = FineStatusWaived
			}

		case FineDeleted:
			if e.FineID == fineID {
				fine.Status = FineStatusDeleted
			}
		}
	}

	return fine
}
