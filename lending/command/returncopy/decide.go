package returncopy

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonLoanNotFound = "loan does not exist"
	failureReasonLoanLost     = "loan was reported lost"
)

// Decide implements the business logic for returning a copy. All resulting
// events are appended atomically: the return itself, an overdue fine when
// the return is late, and either a damage flag or a fulfillment for the next
// waiting reservation.
//
// Business Rules:
//
//	GIVEN: An open loan with LoanID
//	WHEN: ReturnCopy command is received
//	THEN: LoanReturned event is generated
//	AND: FineIssued if the return is past due and no overdue fine for this loan is pending
//	AND: CopyMarkedDamaged if the copy came back damaged (copy is not reoffered)
//	AND: ReservationFulfilled for the oldest waiting reservation otherwise
//	ERROR: "loan was reported lost" if the loan was closed as lost
//	IDEMPOTENCY: If the loan is already returned, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	loanID := command.LoanID.String()
	loan := core.ProjectLoan(history, loanID)

	if !loan.Exists {
		reasons := []string{failureReasonLoanNotFound}
		event := core.BuildOperationDeclined(commandType, loanID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrNotFound, reasons))
	}

	if loan.Returned {
		return core.IdempotentDecision()
	}

	if loan.Lost {
		reasons := []string{failureReasonLoanLost}
		event := core.BuildOperationDeclined(commandType, loanID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrInvalidStateTransition, reasons))
	}

	events := core.DomainEvents{
		core.BuildLoanReturned(loanID, loan.MemberID, loan.CopyID, loan.TitleID, command.OccurredAt),
	}

	daysLate, amount := core.OverdueFineAmount(loan.DueDate, command.OccurredAt, policy)
	if daysLate > 0 && !core.HasPendingOverdueFine(history, loanID) {
		events = append(events, core.BuildFineIssued(
			command.OverdueFineID.String(),
			loan.MemberID,
			loanID,
			core.FineTypeOverdue,
			amount,
			fmt.Sprintf("returned %d day(s) late", daysLate),
			command.OccurredAt,
		))
	}

	if command.Damaged {
		events = append(events, core.BuildCopyMarkedDamaged(loan.CopyID, loan.TitleID, loanID, command.OccurredAt))

		return core.SuccessDecision(events...)
	}

	title := core.ProjectTitleCirculation(history, loan.TitleID)
	if next, waiting := title.NextActiveReservation(); waiting {
		events = append(events, core.BuildReservationFulfilled(
			next.ReservationID,
			next.MemberID,
			loan.TitleID,
			loan.CopyID,
			command.OccurredAt.Add(policy.HoldWindow),
			command.OccurredAt,
		))
	}

	return core.SuccessDecision(events...)
}

// BuildResolveFilter creates the filter for the first phase: resolving the
// loan's member, copy, and title from the loan events alone.
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
// loan, its fines, and the title's copies and reservation queue.
func BuildEventFilter(loanID uuid.UUID, titleID core.TitleIDString) eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
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
			eventlog.P("TitleID", titleID),
		).
		Finalize()
}
