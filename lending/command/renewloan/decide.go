package renewloan

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonLoanNotFound        = "loan does not exist"
	failureReasonLoanClosed          = "loan is already closed"
	failureReasonRenewalLimitReached = "loan has reached the renewal limit"
	failureReasonTitleHasWaiters     = "title has waiting reservations"
	failureReasonMemberSuspended     = "member is suspended"
	failureReasonMembershipExpired   = "membership has expired"
	failureReasonDueDateNotInFuture  = "due date must be in the future"
	failureReasonDueDateTooFarAhead  = "due date must not exceed the loan period"
)

// Decide implements the business logic for renewing a loan.
//
// Business Rules:
//
//	GIVEN: An open loan with LoanID
//	WHEN: RenewLoan command is received
//	THEN: LoanRenewed event is generated with the new due date
//	ERROR: "loan is already closed" if the loan was returned or reported lost
//	ERROR: "loan has reached the renewal limit" after the maximum renewals
//	ERROR: "title has waiting reservations" if anyone is queued or holding
//	ERROR: "member is suspended" / "membership has expired" for ineligible members
//	ERROR: Due date validation failures for custom requested due dates
//	IDEMPOTENCY: If the new due date equals the current one, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	loanID := command.LoanID.String()
	loan := core.ProjectLoan(history, loanID)

	if !loan.Exists {
		reasons := []string{failureReasonLoanNotFound}
		event := core.BuildOperationDeclined(commandType, loanID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrNotFound, reasons))
	}

	if !loan.Open() {
		reasons := []string{failureReasonLoanClosed}
		event := core.BuildOperationDeclined(commandType, loanID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrInvalidStateTransition, reasons))
	}

	standing := core.ProjectMemberStanding(history, loan.MemberID, command.OccurredAt)
	switch standing.Status {
	case core.MemberStatusSuspended:
		reasons := []string{failureReasonMemberSuspended}
		event := core.BuildOperationDeclined(commandType, loanID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrIneligibleMember, reasons))

	case core.MemberStatusExpired:
		reasons := []string{failureReasonMembershipExpired}
		event := core.BuildOperationDeclined(commandType, loanID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrIneligibleMember, reasons))
	}

	if loan.RenewalCount >= policy.MaxRenewals {
		reasons := []string{failureReasonRenewalLimitReached}
		event := core.BuildOperationDeclined(commandType, loanID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrLimitExceeded, reasons))
	}

	title := core.ProjectTitleCirculation(history, loan.TitleID)
	if title.HasWaiters() {
		reasons := []string{failureReasonTitleHasWaiters}
		event := core.BuildOperationDeclined(commandType, loanID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrCopyUnavailable, reasons))
	}

	newDueDate := command.RequestedDueDate
	if newDueDate.IsZero() {
		newDueDate = core.ToOccurredAt(command.OccurredAt.Add(policy.LoanPeriod))
	} else {
		var reasons []string
		if !newDueDate.After(command.OccurredAt) {
			reasons = append(reasons, failureReasonDueDateNotInFuture)
		}

		if newDueDate.After(command.OccurredAt.Add(policy.LoanPeriod)) {
			reasons = append(reasons, failureReasonDueDateTooFarAhead)
		}

		if len(reasons) > 0 {
			event := core.BuildOperationDeclined(commandType, loanID, reasons, command.OccurredAt)
			return core.ErrorDecision(event, core.DeclinedError(core.ErrValidation, reasons))
		}
	}

	if newDueDate.Equal(loan.DueDate) {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildLoanRenewed(
			loanID,
			loan.MemberID,
			loan.CopyID,
			loan.TitleID,
			newDueDate,
			command.OccurredAt,
		),
	)
}

// BuildResolveFilter creates the filter for the first phase: resolving the
// loan's member and title from the loan events alone.
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

// BuildEventFilter creates the filter for the decision phase, covering the
// loan, the borrowing member, and the title's reservation queue.
func BuildEventFilter(loanID uuid.UUID, memberID core.MemberIDString, titleID core.TitleIDString) eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.MemberSuspendedEventType,
			core.MemberReinstatedEventType,
			core.CopyAddedToCirculationEventType,
			core.CopyRemovedFromCirculationEventType,
			core.CopyMarkedDamagedEventType,
			core.LoanOpenedEventType,
			core.LoanRenewedEventType,
			core.LoanReturnedEventType,
			core.LoanReportedLostEventType,
			core.ReservationPlacedEventType,
			core.ReservationCancelledEventType,
			core.ReservationFulfilledEventType,
			core.ReservationExpiredEventType,
			core.FineIssuedEventType,
			core.FinePaidEventType,
			core.FineWaivedEventType,
			core.FineDeletedEventType,
		).
		AndAnyPredicateOf(
			eventlog.P("LoanID", loanID.String()),
			eventlog.P("MemberID", memberID),
			eventlog.P("TitleID", titleID),
		).
		Finalize()
}
