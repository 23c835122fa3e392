package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanState is the derived state of one loan.
type LoanState struct {
	Exists       bool
	LoanID       LoanIDString
	MemberID     MemberIDString
	CopyID       CopyIDString
	TitleID      TitleIDString
	DueDate      time.Time
	RenewalCount int
	Returned     bool
	Lost         bool
}

// Open reports whether the loan is still outstanding.
func (l LoanState) Open() bool {
	return l.Exists && !l.Returned && !l.Lost
}

// Overdue reports whether the loan is open and past due at the given time.
func (l LoanState) Overdue(at time.Time) bool {
	return l.Open() && at.After(l.DueDate)
}

// ProjectLoan folds the event history into the state of one loan.
func ProjectLoan(history DomainEvents, loanID LoanIDString) LoanState {
	loan := LoanState{LoanID: loanID}

	for _, event := range history {
		switch e := event.(type) {
		case LoanOpened:
			if e.LoanID == loanID {
				loan.Exists = true
				loan.MemberID = e.MemberID
				loan.CopyID = e.CopyID
				loan.TitleID = e.TitleID
				loan.DueDate = e.DueDate
			}

		case LoanRenewed:
			if e.LoanID == loanID {
				loan.DueDate = e.NewDueDate
				loan.RenewalCount++
			}

		case LoanReturned:
			if e.LoanID == loanID {
				loan.Returned = true
			}

		case LoanReportedLost:
			if e.LoanID == loanID {
				loan.Lost = true
			}
		}
	}

	return loan
}

// HasPendingOverdueFine reports whether an Overdue fine for the loan is
// still pending. One open Overdue fine per loan is the dedup rule for
// automatic assessment.
func HasPendingOverdueFine(history DomainEvents, loanID LoanIDString) bool {
	pending := make(map[FineIDString]struct{})

	for _, event := range history {
		switch e := event.(type) {
		case FineIssued:
			if e.LoanID == loanID && e.FineType == FineTypeOverdue {
				pending[e.FineID] = struct{}{}
			}

		case FinePaid:
			delete(pending, e.FineID)

		case FineWaived:
			delete(pending, e.FineID)

		case FineDeleted:
			delete(pending, e.FineID)
		}
	}

	return len(pending) > 0
}

// OverdueFineAmount computes the fine for a loan returned late: the daily
// rate times the number of started days between the due date and the return.
func OverdueFineAmount(dueDate time.Time, returnedAt time.Time, policy Policy) (int64, decimal.Decimal) {
	late := returnedAt.Sub(dueDate)
	if late <= 0 {
		return 0, decimal.Zero
	}

	daysLate := int64(late / (24 * time.Hour))
	if late%(24*time.Hour) > 0 {
		daysLate++
	}

	return daysLate, policy.DailyOverdueRate.Mul(decimal.NewFromInt(daysLate))
}
