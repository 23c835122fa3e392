package checkoutcopy

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonCopyNotInCirculation = "copy is not in circulation"
	failureReasonCopyOnLoan           = "copy is already on loan"
	failureReasonCopyHeldForAnother   = "copy is held for another member"
	failureReasonCopyNotLendable      = "copy is not lendable"
	failureReasonDueDateNotInFuture   = "due date must be in the future"
	failureReasonDueDateTooFarAhead   = "due date must not exceed the loan period"
)

// Decide implements the business logic for checking out a copy to a member.
//
// Business Rules:
//
//	GIVEN: A member with MemberID and a copy with CopyID of title with TitleID
//	WHEN: CheckOutCopy command is received
//	THEN: LoanOpened event is generated with the requested or standard due date
//	ERROR: Eligibility reasons if the member may not borrow (all reasons enumerated)
//	ERROR: "copy is already on loan" if another member has the copy
//	ERROR: "copy is held for another member" if a hold blocks the checkout
//	ERROR: Due date validation failures for custom due dates
//	IDEMPOTENCY: If the copy is already on loan to this member, no event generated (no-op)
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	memberID := command.MemberID.String()
	copyID := command.CopyID.String()

	title := core.ProjectTitleCirculation(history, command.TitleID.String())
	standing := core.ProjectMemberStanding(history, memberID, command.OccurredAt)

	cp, copyFound := title.Copies[copyID]
	if copyFound && cp.OpenLoanID != "" && cp.BorrowerID == memberID {
		return core.IdempotentDecision()
	}

	eligibility := core.EvaluateEligibility(standing, policy)
	if !eligibility.Eligible {
		event := core.BuildOperationDeclined(commandType, memberID, eligibility.Reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrIneligibleMember, eligibility.Reasons))
	}

	if reason, ok := copyBlocker(cp, copyFound, memberID); !ok {
		reasons := []string{reason}
		event := core.BuildOperationDeclined(commandType, copyID, reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrCopyUnavailable, reasons))
	}

	dueDate := command.DueDate
	if dueDate.IsZero() {
		dueDate = core.ToOccurredAt(command.OccurredAt.Add(policy.LoanPeriod))
	} else {
		var reasons []string
		if !dueDate.After(command.OccurredAt) {
			reasons = append(reasons, failureReasonDueDateNotInFuture)
		}

		if dueDate.After(command.OccurredAt.Add(policy.LoanPeriod)) {
			reasons = append(reasons, failureReasonDueDateTooFarAhead)
		}

		if len(reasons) > 0 {
			event := core.BuildOperationDeclined(commandType, command.LoanID.String(), reasons, command.OccurredAt)
			return core.ErrorDecision(event, core.DeclinedError(core.ErrValidation, reasons))
		}
	}

	return core.SuccessDecision(
		core.BuildLoanOpened(
			command.LoanID.String(),
			memberID,
			copyID,
			command.TitleID.String(),
			dueDate,
			command.OccurredAt,
		),
	)
}

// copyBlocker reports the reason the copy cannot be lent to the member, if
// any. A hold for this member is claimable; a hold for anyone else blocks.
func copyBlocker(cp *core.CopyState, found bool, memberID string) (string, bool) {
	if !found || !cp.InCirculation {
		return failureReasonCopyNotInCirculation, false
	}

	switch cp.Status() {
	case core.CopyStatusAvailable:
		return "", true

	case core.CopyStatusOnLoan:
		return failureReasonCopyOnLoan, false

	case core.CopyStatusReserved:
		if cp.HeldForMemberID == memberID {
			return "", true
		}

		return failureReasonCopyHeldForAnother, false

	default:
		return failureReasonCopyNotLendable, false
	}
}

// BuildEventFilter creates the filter for querying all events related to the
// member and the title which are relevant for this feature. Everything the
// decision reads is covered, so the optimistic append guard protects against
// any concurrent change to either stream.
func BuildEventFilter(memberID uuid.UUID, titleID uuid.UUID) eventlog.Filter {
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
			eventlog.P("MemberID", memberID.String()),
			eventlog.P("TitleID", titleID.String()),
		).
		Finalize()
}
