package assessoverduefine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonLoanNotFound = "loan does not exist"
)

// Decide implements the business logic for assessing an overdue fine on an
// open loan. At most one Overdue fine per loan may be pending, so repeated
// sweeps do not stack charges.
//
// Business Rules:
//
//	GIVEN: A loan with LoanID
//	WHEN: AssessOverdueFine command is received
//	THEN: FineIssued event is generated for the accrued amount
//	ERROR: "loan does not exist" if the loan is unknown
//	IDEMPOTENCY: If the loan is closed, not overdue, or already has a
//	pending overdue fine, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	loanID := command.LoanID.String()
	loan := core.ProjectLoan(history, loanID)

	if !loan.Exists {
		reasons := []string{failureReasonLoanNotFound}
		event := core.BuildOperationDeclined(commandType, loanID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrNotFound, reasons))
	}

	if !loan.Overdue(command.OccurredAt) || core.HasPendingOverdueFine(history, loanID) {
		return core.IdempotentDecision()
	}

	daysLate, amount := core.OverdueFineAmount(loan.DueDate, command.OccurredAt, policy)

	return core.SuccessDecision(
		core.BuildFineIssued(
			command.FineID.String(),
			loan.MemberID,
			loanID,
			core.FineTypeOverdue,
			amount,
			fmt.Sprintf("overdue by %d day(s)", daysLate),
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for querying the loan and its fines.
func BuildEventFilter(loanID uuid.UUID) eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.LoanOpenedEventType,
			core.LoanRenewedEventType,
			core.LoanReturnedEventType,
			core.LoanReportedLostEventType,
			core.FineIssuedEventType,
			core.FinePaidEventType,
			core.FineWaivedEventType,
			core.FineDeletedEventType,
		).
		AndAnyPredicateOf(
			eventlog.P("LoanID", loanID.String()),
		).
		Finalize()
}
