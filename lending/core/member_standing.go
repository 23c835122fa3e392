package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Membership status values. Expired is derived from MembershipExpiresAt and
// never stored.
const (
	MemberStatusActive    = "Active"
	MemberStatusSuspended = "Suspended"
	MemberStatusExpired   = "Expired"
)

// Eligibility failure reasons, enumerated so callers see every blocker at
// once.
const (
	ReasonMemberNotRegistered     = "member is not registered"
	ReasonMembershipExpired       = "membership has expired"
	ReasonMemberSuspended         = "member is suspended"
	ReasonOutstandingFines        = "member has outstanding fines"
	ReasonOverdueLoans            = "member has overdue loans"
	ReasonLoanLimitReached        = "member has reached the active loan limit"
	ReasonReservationLimitReached = "member has reached the active reservation limit"
)

// MemberStanding is the circulation state of one member projected from the
// event history at a given point in time.
type MemberStanding struct {
	Exists                 bool
	Status                 string
	OpenLoanCount          int
	OverdueLoanCount       int
	OutstandingBalance     decimal.Decimal
	ActiveReservationCount int
}

// EligibilityResult reports whether a member may borrow, with every blocking
// reason enumerated and non-blocking warnings listed separately.
type EligibilityResult struct {
	Eligible       bool
	AvailableSlots int
	Reasons        []string
	Warnings       []string
}

// ProjectMemberStanding folds the event history into the standing of one
// member as of the given time. Overdue counts and the Expired status are
// derived from timestamps, not from stored state.
func ProjectMemberStanding(history DomainEvents, memberID MemberIDString, at time.Time) MemberStanding { //nolint:gocognit
	standing := MemberStanding{
		Status:             MemberStatusActive,
		OutstandingBalance: decimal.Zero,
	}

	var membershipExpiresAt time.Time
	suspended := false
	openLoanDueDates := make(map[LoanIDString]time.Time)
	pendingFines := make(map[FineIDString]decimal.Decimal)
	activeReservations := make(map[ReservationIDString]struct{})
	heldCopyToReservation := make(map[CopyIDString]ReservationIDString)

	for _, event := range history {
		switch e := event.(type) {
		case MemberRegistered:
			if e.MemberID == memberID {
				standing.Exists = true
				membershipExpiresAt = e.MembershipExpiresAt
			}

		case MemberSuspended:
			if e.MemberID == memberID {
				suspended = true
			}

		case MemberReinstated:
			if e.MemberID == memberID {
				suspended = false
			}

		case LoanOpened:
			if e.MemberID == memberID {
				openLoanDueDates[e.LoanID] = e.DueDate

				// checking out a held copy claims the reservation
				if reservationID, held := heldCopyToReservation[e.CopyID]; held {
					delete(activeReservations, reservationID)
					delete(heldCopyToReservation, e.CopyID)
				}
			}

		case LoanRenewed:
			if e.MemberID == memberID {
				if _, open := openLoanDueDates[e.LoanID]; open {
					openLoanDueDates[e.LoanID] = e.NewDueDate
				}
			}

		case LoanReturned:
			if e.MemberID == memberID {
				delete(openLoanDueDates, e.LoanID)
			}

		case LoanReportedLost:
			if e.MemberID == memberID {
				delete(openLoanDueDates, e.LoanID)
			}

		case FineIssued:
			if e.MemberID == memberID {
				pendingFines[e.FineID] = e.Amount
			}

		case FinePaid:
			if e.MemberID == memberID {
				delete(pendingFines, e.FineID)
			}

		case FineWaived:
			if e.MemberID == memberID {
				delete(pendingFines, e.FineID)
			}

		case FineDeleted:
			if e.MemberID == memberID {
				delete(pendingFines, e.FineID)
			}

		case ReservationPlaced:
			if e.MemberID == memberID {
				activeReservations[e.ReservationID] = struct{}{}
			}

		case ReservationFulfilled:
			if e.MemberID == memberID {
				heldCopyToReservation[e.CopyID] = e.ReservationID
			}

		case ReservationCancelled:
			if e.MemberID == memberID {
				delete(activeReservations, e.ReservationID)
				for copyID, reservationID := range heldCopyToReservation {
					if reservationID == e.ReservationID {
						delete(heldCopyToReservation, copyID)
					}
				}
			}

		case ReservationExpired:
			if e.MemberID == memberID {
				delete(activeReservations, e.ReservationID)
				delete(heldCopyToReservation, e.CopyID)
			}
		}
	}

	if suspended {
		standing.Status = MemberStatusSuspended
	} else if standing.Exists && !membershipExpiresAt.After(at) {
		standing.Status = MemberStatusExpired
	}

	standing.OpenLoanCount = len(openLoanDueDates)
	for _, dueDate := range openLoanDueDates {
		if at.After(dueDate) {
			standing.OverdueLoanCount++
		}
	}

	for _, amount := range pendingFines {
		standing.OutstandingBalance = standing.OutstandingBalance.Add(amount)
	}

	standing.ActiveReservationCount = len(activeReservations)

	return standing
}

// EvaluateEligibility applies the borrowing rules to a member's standing.
// All blocking reasons are collected so the caller can report them together.
// Overdue loans and a full reservation list are warnings only; they block
// nothing beyond their contribution to balance and loan count.
func EvaluateEligibility(standing MemberStanding, policy Policy) EligibilityResult {
	result := EligibilityResult{
		AvailableSlots: max(0, policy.MaxActiveLoans-standing.OpenLoanCount),
	}

	if !standing.Exists {
		result.Reasons = append(result.Reasons, ReasonMemberNotRegistered)
		return result
	}

	switch standing.Status {
	case MemberStatusSuspended:
		result.Reasons = append(result.Reasons, ReasonMemberSuspended)
	case MemberStatusExpired:
		result.Reasons = append(result.Reasons, ReasonMembershipExpired)
	}

	if standing.OutstandingBalance.IsPositive() {
		result.Reasons = append(result.Reasons, ReasonOutstandingFines)
	}

	if standing.OpenLoanCount >= policy.MaxActiveLoans {
		result.Reasons = append(result.Reasons, ReasonLoanLimitReached)
	}

	if standing.OverdueLoanCount > 0 {
		result.Warnings = append(result.Warnings, ReasonOverdueLoans)
	}

	if standing.ActiveReservationCount >= policy.MaxActiveReservations {
		result.Warnings = append(result.Warnings, ReasonReservationLimitReached)
	}

	result.Eligible = len(result.Reasons) == 0

	return result
}
