package memberaccount

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

// ProjectMemberAccount implements the query logic for the member account
// view. This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: A member with MemberID
//	WHEN: MemberAccount query is executed
//	THEN: MemberAccount struct is returned with open loans, the fine ledger,
//	reservations, and the derived outstanding balance
//	INCLUDES: Settled fines, for the account history
//	EXCLUDES: Returned and lost loans, cancelled and settled reservations
func ProjectMemberAccount(history core.DomainEvents, query Query) MemberAccount { //nolint:gocognit
	memberID := query.MemberID.String()

	account := MemberAccount{
		MemberID:           memberID,
		Status:             core.MemberStatusActive,
		OutstandingBalance: decimal.Zero,
	}

	openLoans := make(map[core.LoanIDString]*LoanInfo)
	fines := make(map[core.FineIDString]*FineInfo)
	var fineOrder []core.FineIDString
	reservations := make(map[core.ReservationIDString]*ReservationInfo)
	var reservationOrder []core.ReservationIDString
	heldCopyToReservation := make(map[core.CopyIDString]core.ReservationIDString)

	var membershipExpiresAt core.OccurredAtTS
	suspended := false

	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			if e.MemberID == memberID {
				account.Exists = true
				account.Name = e.Name
				membershipExpiresAt = e.MembershipExpiresAt
			}

		case core.MemberSuspended:
			if e.MemberID == memberID {
				suspended = true
			}

		case core.MemberReinstated:
			if e.MemberID == memberID {
				suspended = false
			}

		case core.LoanOpened:
			if e.MemberID == memberID {
				openLoans[e.LoanID] = &LoanInfo{
					LoanID:       e.LoanID,
					CopyID:       e.CopyID,
					TitleID:      e.TitleID,
					CheckedOutAt: e.OccurredAt,
					DueDate:      e.DueDate,
				}

				if reservationID, held := heldCopyToReservation[e.CopyID]; held {
					delete(reservations, reservationID)
					delete(heldCopyToReservation, e.CopyID)
				}
			}

		case core.LoanRenewed:
			if e.MemberID == memberID {
				if loan, open := openLoans[e.LoanID]; open {
					loan.DueDate = e.NewDueDate
					loan.RenewalCount++
				}
			}

		case core.LoanReturned:
			if e.MemberID == memberID {
				delete(openLoans, e.LoanID)
			}

		case core.LoanReportedLost:
			if e.MemberID == memberID {
				delete(openLoans, e.LoanID)
			}

		case core.FineIssued:
			if e.MemberID == memberID {
				fines[e.FineID] = &FineInfo{
					FineID:      e.FineID,
					LoanID:      e.LoanID,
					FineType:    e.FineType,
					Amount:      e.Amount,
					Status:      core.FineStatusPending,
					Description: e.Description,
					IssuedAt:    e.OccurredAt,
				}
				fineOrder = append(fineOrder, e.FineID)
			}

		case core.FinePaid:
			if fine, found := fines[e.FineID]; found {
				fine.Status = core.FineStatusPaid
			}

		case core.FineWaived:
			if fine, found := fines[e.FineID]; found {
				fine.Status = core.FineStatusWaived
			}

		case core.FineDeleted:
			if fine, found := fines[e.FineID]; found {
				fine.Status = core.FineStatusDeleted
			}

		case core.ReservationPlaced:
			if e.MemberID == memberID {
				reservations[e.ReservationID] = &ReservationInfo{
					ReservationID: e.ReservationID,
					TitleID:       e.TitleID,
					Status:        core.ReservationStatusActive,
					PlacedAt:      e.OccurredAt,
				}
				reservationOrder = append(reservationOrder, e.ReservationID)
			}

		case core.ReservationFulfilled:
			if e.MemberID == memberID {
				if reservation, found := reservations[e.ReservationID]; found {
					reservation.Status = core.ReservationStatusFulfilled
					reservation.HoldUntil = e.HoldUntil
				}
				heldCopyToReservation[e.CopyID] = e.ReservationID
			}

		case core.ReservationCancelled:
			if e.MemberID == memberID {
				delete(reservations, e.ReservationID)
			}

		case core.ReservationExpired:
			if e.MemberID == memberID {
				delete(reservations, e.ReservationID)
				delete(heldCopyToReservation, e.CopyID)
			}
		}
	}

	if suspended {
		account.Status = core.MemberStatusSuspended
	} else if account.Exists && !membershipExpiresAt.After(query.At) {
		account.Status = core.MemberStatusExpired
	}

	for _, loan := range openLoans {
		loan.Overdue = query.At.After(loan.DueDate)
		account.OpenLoans = append(account.OpenLoans, *loan)
	}

	slices.SortFunc(account.OpenLoans, func(a, b LoanInfo) int {
		return a.CheckedOutAt.Compare(b.CheckedOutAt)
	})

	for _, fineID := range fineOrder {
		fine := fines[fineID]
		account.Fines = append(account.Fines, *fine)

		if fine.Status == core.FineStatusPending {
			account.OutstandingBalance = account.OutstandingBalance.Add(fine.Amount)
		}
	}

	for _, reservationID := range reservationOrder {
		if reservation, found := reservations[reservationID]; found {
			account.Reservations = append(account.Reservations, *reservation)
		}
	}

	return account
}

// BuildEventFilter creates the filter for querying all events on the
// member's account.
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
