package memberaccount_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation-go/lending/core"
	"github.com/shelfwise/circulation-go/lending/query/memberaccount"
)

//nolint:funlen
func Test_ProjectMemberAccount_FullAccountView(t *testing.T) {
	// arrange
	memberID := uuid.New()
	titleID := uuid.New().String()
	now := time.Now()

	openLoanID := uuid.New().String()
	overdueLoanID := uuid.New().String()
	returnedLoanID := uuid.New().String()
	pendingFineID := uuid.New().String()
	paidFineID := uuid.New().String()
	reservationID := uuid.New().String()

	history := core.DomainEvents{
		core.BuildMemberRegistered(memberID.String(), "Ada Lovelace", now.Add(200*24*time.Hour), now.Add(-100*time.Hour)),
		core.BuildLoanOpened(returnedLoanID, memberID.String(), uuid.New().String(), titleID, now.Add(50*time.Hour), now.Add(-90*time.Hour)),
		core.BuildLoanReturned(returnedLoanID, memberID.String(), uuid.New().String(), titleID, now.Add(-80*time.Hour)),
		core.BuildLoanOpened(overdueLoanID, memberID.String(), uuid.New().String(), titleID, now.Add(-10*time.Hour), now.Add(-80*time.Hour)),
		core.BuildLoanOpened(openLoanID, memberID.String(), uuid.New().String(), titleID, now.Add(-30*time.Hour), now.Add(-70*time.Hour)),
		core.BuildLoanRenewed(openLoanID, memberID.String(), uuid.New().String(), titleID, now.Add(100*time.Hour), now.Add(-20*time.Hour)),
		core.BuildFineIssued(paidFineID, memberID.String(), overdueLoanID, core.FineTypeOverdue, decimal.NewFromFloat(1.50), "returned 3 day(s) late", now.Add(-50*time.Hour)),
		core.BuildFinePaid(paidFineID, memberID.String(), overdueLoanID, decimal.NewFromFloat(1.50), now.Add(-40*time.Hour)),
		core.BuildFineIssued(pendingFineID, memberID.String(), "", core.FineTypeOther, decimal.NewFromFloat(2.25), "coffee stains", now.Add(-30*time.Hour)),
		core.BuildReservationPlaced(reservationID, memberID.String(), uuid.New().String(), now.Add(-10*time.Hour)),
	}

	// act
	account := memberaccount.ProjectMemberAccount(history, memberaccount.BuildQuery(memberID, now))

	// assert
	assert.True(t, account.Exists)
	assert.Equal(t, "Ada Lovelace", account.Name)
	assert.Equal(t, core.MemberStatusActive, account.Status)

	assert.Len(t, account.OpenLoans, 2, "Returned loan must not be listed")
	assert.Equal(t, overdueLoanID, account.OpenLoans[0].LoanID, "Loans must be sorted by checkout time")
	assert.True(t, account.OpenLoans[0].Overdue)
	assert.Equal(t, openLoanID, account.OpenLoans[1].LoanID)
	assert.False(t, account.OpenLoans[1].Overdue, "Renewal must push the due date out")
	assert.Equal(t, 1, account.OpenLoans[1].RenewalCount)

	assert.Len(t, account.Fines, 2, "Settled fines stay in the ledger")
	assert.Equal(t, core.FineStatusPaid, account.Fines[0].Status)
	assert.Equal(t, core.FineStatusPending, account.Fines[1].Status)
	assert.True(t, decimal.NewFromFloat(2.25).Equal(account.OutstandingBalance),
		"Only pending fines count towards the balance")

	assert.Len(t, account.Reservations, 1)
	assert.Equal(t, reservationID, account.Reservations[0].ReservationID)
	assert.Equal(t, core.ReservationStatusActive, account.Reservations[0].Status)
}

func Test_ProjectMemberAccount_UnknownMember(t *testing.T) {
	// arrange
	otherMemberID := uuid.New().String()
	now := time.Now()

	history := core.DomainEvents{
		core.BuildMemberRegistered(otherMemberID, "Grace Hopper", now.Add(200*24*time.Hour), now.Add(-100*time.Hour)),
	}

	// act
	account := memberaccount.ProjectMemberAccount(history, memberaccount.BuildQuery(uuid.New(), now))

	// assert
	assert.False(t, account.Exists)
	assert.Empty(t, account.OpenLoans)
	assert.Empty(t, account.Fines)
	assert.True(t, decimal.Zero.Equal(account.OutstandingBalance))
}

func Test_ProjectMemberAccount_ClaimedHoldLeavesTheReservationList(t *testing.T) {
	// arrange
	memberID := uuid.New()
	titleID := uuid.New().String()
	copyID := uuid.New().String()
	reservationID := uuid.New().String()
	now := time.Now()

	history := core.DomainEvents{
		core.BuildMemberRegistered(memberID.String(), "Ada Lovelace", now.Add(200*24*time.Hour), now.Add(-100*time.Hour)),
		core.BuildReservationPlaced(reservationID, memberID.String(), titleID, now.Add(-50*time.Hour)),
		core.BuildReservationFulfilled(reservationID, memberID.String(), titleID, copyID, now.Add(22*time.Hour), now.Add(-50*time.Hour)),
		core.BuildLoanOpened(uuid.New().String(), memberID.String(), copyID, titleID, now.Add(100*time.Hour), now.Add(-1*time.Hour)),
	}

	// act
	account := memberaccount.ProjectMemberAccount(history, memberaccount.BuildQuery(memberID, now))

	// assert
	assert.Empty(t, account.Reservations, "Claiming the held copy settles the reservation")
	assert.Len(t, account.OpenLoans, 1)
}

func Test_ProjectMemberAccount_ExpiredMembershipIsDerivedAtQueryTime(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()

	history := core.DomainEvents{
		core.BuildMemberRegistered(memberID.String(), "Ada Lovelace", now.Add(-time.Hour), now.Add(-100*time.Hour)),
	}

	// act
	account := memberaccount.ProjectMemberAccount(history, memberaccount.BuildQuery(memberID, now))

	// assert
	assert.Equal(t, core.MemberStatusExpired, account.Status)
}
