package loansduesoon

import (
	"sort"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

// ProjectLoansDueSoon implements the query logic for finding open loans that
// are about to fall due. This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: The loan lifecycle events of all members
//	WHEN: LoansDueSoon query is executed
//	THEN: LoansDueSoon struct is returned listing every open loan whose due
//	date falls within [AsOf, AsOf+Within], ordered by due date
//	EXCLUDES: Loans already returned or reported lost, and loans already
//	overdue before AsOf
func ProjectLoansDueSoon(history core.DomainEvents, query Query) LoansDueSoon {
	openLoans := make(map[core.LoanIDString]DueLoan)
	loanOrder := make([]core.LoanIDString, 0)

	for _, event := range history {
		switch e := event.(type) {
		case core.LoanOpened:
			if _, seen := openLoans[e.LoanID]; !seen {
				loanOrder = append(loanOrder, e.LoanID)
			}
			openLoans[e.LoanID] = DueLoan{
				LoanID:   e.LoanID,
				MemberID: e.MemberID,
				CopyID:   e.CopyID,
				TitleID:  e.TitleID,
				DueDate:  e.DueDate,
			}

		case core.LoanRenewed:
			if loan, open := openLoans[e.LoanID]; open {
				loan.DueDate = e.NewDueDate
				openLoans[e.LoanID] = loan
			}

		case core.LoanReturned:
			delete(openLoans, e.LoanID)

		case core.LoanReportedLost:
			delete(openLoans, e.LoanID)
		}
	}

	windowEnd := query.AsOf.Add(query.Within)

	result := LoansDueSoon{}

	for _, loanID := range loanOrder {
		loan, open := openLoans[loanID]
		if !open || loan.DueDate.Before(query.AsOf) || loan.DueDate.After(windowEnd) {
			continue
		}

		result.Loans = append(result.Loans, loan)
	}

	sort.Slice(result.Loans, func(i, j int) bool {
		return result.Loans[i].DueDate.Before(result.Loans[j].DueDate)
	})

	return result
}

// BuildEventFilter creates the filter for querying the loan lifecycle events
// of all members. No predicates are needed; the scheduler scans everything.
func BuildEventFilter() eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.LoanOpenedEventType,
			core.LoanRenewedEventType,
			core.LoanReturnedEventType,
			core.LoanReportedLostEventType,
		).
		Finalize()
}
