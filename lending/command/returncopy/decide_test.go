package returncopy_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation-go/lending/command/returncopy"
	"github.com/shelfwise/circulation-go/lending/core"
)

func Test_Decide_Success_OnTimeReturn(t *testing.T) {
	// arrange
	loanID := uuid.New()
	memberID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenCopyAddedToCirculation(t, copyID, titleID, now.Add(-10*time.Hour)),
		givenLoanOpened(t, loanID, memberID, copyID, titleID, now.Add(-5*time.Hour), now.Add(100*time.Hour)),
	}

	command := returncopy.BuildCommand(loanID, false, now)

	// act
	result := returncopy.Decide(events, command, core.DefaultPolicy())

	// assert - only the return itself, no fine, no fulfillment
	assert.Equal(t, "success", result.Outcome)
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)

	returned, ok := result.Events[0].(core.LoanReturned)
	assert.True(t, ok, "Expected LoanReturned event")
	assert.Equal(t, loanID.String(), returned.LoanID)
	assert.Equal(t, copyID.String(), returned.CopyID)
}

func Test_Decide_Success_LateReturn_IssuesOverdueFine(t *testing.T) {
	// arrange - due 2024-01-10, returned 2024-01-13: three full days late
	loanID := uuid.New()
	memberID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	dueDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	returnedAt := time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)

	events := core.DomainEvents{
		givenCopyAddedToCirculation(t, copyID, titleID, dueDate.Add(-400*time.Hour)),
		givenLoanOpened(t, loanID, memberID, copyID, titleID, dueDate.Add(-336*time.Hour), dueDate),
	}

	command := returncopy.BuildCommand(loanID, false, returnedAt)

	// act
	result := returncopy.Decide(events, command, core.DefaultPolicy())

	// assert
	assert.Equal(t, "success", result.Outcome)
	assert.Len(t, result.Events, 2)

	fine, ok := result.Events[1].(core.FineIssued)
	assert.True(t, ok, "Expected FineIssued event")
	assert.Equal(t, core.FineTypeOverdue, fine.FineType)
	assert.Equal(t, loanID.String(), fine.LoanID)
	assert.Equal(t, memberID.String(), fine.MemberID)
	assert.True(t, decimal.NewFromFloat(1.50).Equal(fine.Amount),
		"3 days late at 0.50/day should be 1.50, got %s", fine.Amount)
	assert.Equal(t, "returned 3 day(s) late", fine.Description)
}

func Test_Decide_Success_LateReturn_PartialDayCountsAsFullDay(t *testing.T) {
	// arrange - one hour past due counts as one started day
	loanID := uuid.New()
	memberID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	dueDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	returnedAt := dueDate.Add(1 * time.Hour)

	events := core.DomainEvents{
		givenCopyAddedToCirculation(t, copyID, titleID, dueDate.Add(-400*time.Hour)),
		givenLoanOpened(t, loanID, memberID, copyID, titleID, dueDate.Add(-336*time.Hour), dueDate),
	}

	command := returncopy.BuildCommand(loanID, false, returnedAt)

	// act
	result := returncopy.Decide(events, command, core.DefaultPolicy())

	// assert
	assert.Len(t, result.Events, 2)

	fine := result.Events[1].(core.FineIssued)
	assert.True(t, decimal.NewFromFloat(0.50).Equal(fine.Amount),
		"one started day at 0.50/day should be 0.50, got %s", fine.Amount)
	assert.Equal(t, "returned 1 day(s) late", fine.Description)
}

func Test_Decide_LateReturn_NoDuplicateFine_WhenOverdueFinePending(t *testing.T) {
	// arrange - an overdue fine for this loan was already assessed
	loanID := uuid.New()
	memberID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	dueDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	returnedAt := time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)

	events := core.DomainEvents{
		givenCopyAddedToCirculation(t, copyID, titleID, dueDate.Add(-400*time.Hour)),
		givenLoanOpened(t, loanID, memberID, copyID, titleID, dueDate.Add(-336*time.Hour), dueDate),
		core.BuildFineIssued(
			uuid.New().String(),
			memberID.String(),
			loanID.String(),
			core.FineTypeOverdue,
			decimal.NewFromFloat(1.00),
			"overdue by 2 day(s)",
			dueDate.Add(48*time.Hour),
		),
	}

	command := returncopy.BuildCommand(loanID, false, returnedAt)

	// act
	result := returncopy.Decide(events, command, core.DefaultPolicy())

	// assert - just the return, no second fine
	assert.Equal(t, "success", result.Outcome)
	assert.Len(t, result.Events, 1)
	_, ok := result.Events[0].(core.LoanReturned)
	assert.True(t, ok, "Expected LoanReturned event")
}

func Test_Decide_Success_FulfillsOldestWaitingReservation(t *testing.T) {
	// arrange - members A and B wait in order; A placed first
	loanID := uuid.New()
	borrowerID := uuid.New()
	memberAID := uuid.New()
	memberBID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	reservationAID := uuid.New()
	reservationBID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenCopyAddedToCirculation(t, copyID, titleID, now.Add(-10*time.Hour)),
		givenLoanOpened(t, loanID, borrowerID, copyID, titleID, now.Add(-8*time.Hour), now.Add(100*time.Hour)),
		givenReservationPlaced(t, reservationAID, memberAID, titleID, now.Add(-5*time.Hour)),
		givenReservationPlaced(t, reservationBID, memberBID, titleID, now.Add(-3*time.Hour)),
	}

	command := returncopy.BuildCommand(loanID, false, now)

	// act
	result := returncopy.Decide(events, command, core.DefaultPolicy())

	// assert - the return and the hold for A, atomically
	assert.Equal(t, "success", result.Outcome)
	assert.Len(t, result.Events, 2)

	fulfilled, ok := result.Events[1].(core.ReservationFulfilled)
	assert.True(t, ok, "Expected ReservationFulfilled event")
	assert.Equal(t, reservationAID.String(), fulfilled.ReservationID, "Oldest reservation should be fulfilled first")
	assert.Equal(t, memberAID.String(), fulfilled.MemberID)
	assert.Equal(t, copyID.String(), fulfilled.CopyID)

	expectedHoldUntil := core.ToOccurredAt(command.OccurredAt.Add(core.DefaultPolicy().HoldWindow))
	assert.Equal(t, expectedHoldUntil, fulfilled.HoldUntil)
}

func Test_Decide_Success_DamagedCopyIsNotReoffered(t *testing.T) {
	// arrange - a waiter exists but the copy comes back damaged
	loanID := uuid.New()
	borrowerID := uuid.New()
	waiterID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenCopyAddedToCirculation(t, copyID, titleID, now.Add(-10*time.Hour)),
		givenLoanOpened(t, loanID, borrowerID, copyID, titleID, now.Add(-8*time.Hour), now.Add(100*time.Hour)),
		givenReservationPlaced(t, uuid.New(), waiterID, titleID, now.Add(-5*time.Hour)),
	}

	command := returncopy.BuildCommand(loanID, true, now)

	// act
	result := returncopy.Decide(events, command, core.DefaultPolicy())

	// assert - return plus damage flag, no fulfillment
	assert.Equal(t, "success", result.Outcome)
	assert.Len(t, result.Events, 2)

	damaged, ok := result.Events[1].(core.CopyMarkedDamaged)
	assert.True(t, ok, "Expected CopyMarkedDamaged event")
	assert.Equal(t, copyID.String(), damaged.CopyID)
	assert.Equal(t, loanID.String(), damaged.LoanID)
}

func Test_Decide_Idempotent_WhenLoanAlreadyReturned(t *testing.T) {
	// arrange
	loanID := uuid.New()
	memberID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenCopyAddedToCirculation(t, copyID, titleID, now.Add(-10*time.Hour)),
		givenLoanOpened(t, loanID, memberID, copyID, titleID, now.Add(-5*time.Hour), now.Add(100*time.Hour)),
		core.BuildLoanReturned(loanID.String(), memberID.String(), copyID.String(), titleID.String(), now.Add(-1*time.Hour)),
	}

	command := returncopy.BuildCommand(loanID, false, now)

	// act
	result := returncopy.Decide(events, command, core.DefaultPolicy())

	// assert
	assert.Equal(t, "idempotent", result.Outcome)
	assert.Empty(t, result.Events)
	assert.NoError(t, result.HasError())
}

func Test_Decide_Error_WhenLoanNotFound(t *testing.T) {
	// arrange
	command := returncopy.BuildCommand(uuid.New(), false, time.Now())

	// act
	result := returncopy.Decide(core.DomainEvents{}, command, core.DefaultPolicy())

	// assert
	assert.Equal(t, "error", result.Outcome)
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
	assert.ErrorContains(t, result.HasError(), "loan does not exist")
}

func Test_Decide_Error_WhenLoanReportedLost(t *testing.T) {
	// arrange
	loanID := uuid.New()
	memberID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenCopyAddedToCirculation(t, copyID, titleID, now.Add(-10*time.Hour)),
		givenLoanOpened(t, loanID, memberID, copyID, titleID, now.Add(-5*time.Hour), now.Add(100*time.Hour)),
		core.BuildLoanReportedLost(loanID.String(), memberID.String(), copyID.String(), titleID.String(), now.Add(-1*time.Hour)),
	}

	command := returncopy.BuildCommand(loanID, false, now)

	// act
	result := returncopy.Decide(events, command, core.DefaultPolicy())

	// assert
	assert.Equal(t, "error", result.Outcome)
	assert.ErrorIs(t, result.HasError(), core.ErrInvalidStateTransition)
	assert.ErrorContains(t, result.HasError(), "loan was reported lost")
}

// Test helper functions with t.Helper() for better error reporting

func givenCopyAddedToCirculation(t *testing.T, copyID, titleID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildCopyAddedToCirculation(
		copyID.String(),
		titleID.String(),
		"978-1-098-10013-1",
		"Test Title",
		"Test Author",
		at,
	)
}

func givenLoanOpened(t *testing.T, loanID, memberID, copyID, titleID uuid.UUID, at, dueDate time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildLoanOpened(
		loanID.String(),
		memberID.String(),
		copyID.String(),
		titleID.String(),
		dueDate,
		at,
	)
}

func givenReservationPlaced(t *testing.T, reservationID, memberID, titleID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildReservationPlaced(
		reservationID.String(),
		memberID.String(),
		titleID.String(),
		at,
	)
}
