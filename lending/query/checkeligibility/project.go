package checkeligibility

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

// ProjectEligibility implements the query logic for borrowing eligibility.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: A member with MemberID
//	WHEN: CheckEligibility query is executed
//	THEN: EligibilityReport is returned with the derived standing and all
//	blocking reasons at once
func ProjectEligibility(history core.DomainEvents, query Query, policy core.Policy) EligibilityReport {
	memberID := query.MemberID.String()

	standing := core.ProjectMemberStanding(history, memberID, query.At)
	eligibility := core.EvaluateEligibility(standing, policy)

	return EligibilityReport{
		MemberID:               memberID,
		Exists:                 standing.Exists,
		Status:                 standing.Status,
		OpenLoanCount:          standing.OpenLoanCount,
		OverdueLoanCount:       standing.OverdueLoanCount,
		OutstandingBalance:     standing.OutstandingBalance,
		ActiveReservationCount: standing.ActiveReservationCount,
		Eligible:               eligibility.Eligible,
		AvailableSlots:         eligibility.AvailableSlots,
		Reasons:                eligibility.Reasons,
		Warnings:               eligibility.Warnings,
	}
}

// BuildEventFilter creates the filter for querying all events that shape the
// member's standing.
func BuildEventFilter(memberID uuid.UUID) eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.MemberSuspendedEventType,
			core.MemberReinstatedEventType,
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
		).
		Finalize()
}
