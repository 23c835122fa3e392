package reportcopylost

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonLoanNotFound = "loan does not exist"
	failureReasonLoanReturned = "loan is already returned"

	lostFineDescription = "replacement fee for lost copy"
)

// Decide implements the business logic for reporting a copy lost. The loan
// is closed, the copy leaves the lendable pool, and the replacement fee is
// charged in the same atomic append.
//
// Business Rules:
//
//	GIVEN: An open loan with LoanID
//	WHEN: ReportCopyLost command is received
//	THEN: LoanReportedLost and FineIssued events are generated
//	ERROR: "loan is already returned" if the loan was closed by a return
//	IDEMPOTENCY: If the loan is already reported lost, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	loanID := command.LoanID.String()
	loan := core.ProjectLoan(history, loanID)

	if !loan.Exists {
		reasons := []string{failureReasonLoanNotFound}
		event := core.BuildOperationDeclined(commandType, loanID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrNotFound, reasons))
	}

	if loan.Lost {
		return core.IdempotentDecision()
	}

	if loan.Returned {
		reasons := []string{failureReasonLoanReturned}
		event := core.BuildOperationDeclined(commandType, loanID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrInvalidStateTransition, reasons))
	}

	return core.SuccessDecision(
		core.BuildLoanReportedLost(loanID, loan.MemberID, loan.CopyID, loan.TitleID, command.OccurredAt),
		core.BuildFineIssued(
			command.ReplacementFineID.String(),
			loan.MemberID,
			loanID,
			core.FineTypeLost,
			policy.LostReplacementFee,
			lostFineDescription,
			command.OccurredAt,
		),
	)
}

// BuildResolveFilter creates the filter for the first phase: resolving the
// loan from the loan events alone.
func BuildResolveFilter(loanID uuid.UUID) eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.LoanOpenedEventType,
			core.LoanRenewedEventType,
			core.LoanReturnedEventType,
			core.LoanReportedLostEventType,
		).
		AndAnyPredicateOf(
			eventlog.P("LoanID", loanID.String()),
		).
		Finalize()
}

// BuildEventFilter creates the filter for the decision phase. The loan
// events carry everything this decision reads.
func BuildEventFilter(loanID uuid.UUID) eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.LoanOpenedEventType,
			core.LoanRenewedEventType,
			core.LoanReturnedEventType,
			core.LoanReportedLostEventType,
			core.FineIssuedEventType,
		).
		AndAnyPredicateOf(
			eventlog.P("LoanID", loanID.String()),
		).
		Finalize()
}
