package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation-go/lending/core"
)

func Test_ProjectLoan_FullLifecycle(t *testing.T) {
	// arrange
	loanID := uuid.New().String()
	memberID := uuid.New().String()
	copyID := uuid.New().String()
	titleID := uuid.New().String()
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanOpened(loanID, memberID, copyID, titleID, now.Add(50*time.Hour), now.Add(-100*time.Hour)),
		core.BuildLoanRenewed(loanID, memberID, copyID, titleID, now.Add(150*time.Hour), now.Add(-50*time.Hour)),
		core.BuildLoanRenewed(loanID, memberID, copyID, titleID, now.Add(250*time.Hour), now.Add(-10*time.Hour)),
	}

	// act
	loan := core.ProjectLoan(history, loanID)

	// assert
	assert.True(t, loan.Exists)
	assert.True(t, loan.Open())
	assert.Equal(t, memberID, loan.MemberID)
	assert.Equal(t, copyID, loan.CopyID)
	assert.Equal(t, titleID, loan.TitleID)
	assert.Equal(t, 2, loan.RenewalCount)
	assert.Equal(t, core.ToOccurredAt(now.Add(250*time.Hour)), core.ToOccurredAt(loan.DueDate))
	assert.False(t, loan.Overdue(now))
	assert.True(t, loan.Overdue(now.Add(251*time.Hour)))
}

func Test_ProjectLoan_ClosedLoansAreNeitherOpenNorOverdue(t *testing.T) {
	// arrange
	memberID := uuid.New().String()
	copyID := uuid.New().String()
	titleID := uuid.New().String()
	returnedLoanID := uuid.New().String()
	lostLoanID := uuid.New().String()
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanOpened(returnedLoanID, memberID, copyID, titleID, now.Add(-50*time.Hour), now.Add(-100*time.Hour)),
		core.BuildLoanReturned(returnedLoanID, memberID, copyID, titleID, now.Add(-10*time.Hour)),
		core.BuildLoanOpened(lostLoanID, memberID, copyID, titleID, now.Add(-50*time.Hour), now.Add(-100*time.Hour)),
		core.BuildLoanReportedLost(lostLoanID, memberID, copyID, titleID, now.Add(-10*time.Hour)),
	}

	// act
	returned := core.ProjectLoan(history, returnedLoanID)
	lost := core.ProjectLoan(history, lostLoanID)
	unknown := core.ProjectLoan(history, uuid.New().String())

	// assert
	assert.True(t, returned.Returned)
	assert.False(t, returned.Open())
	assert.False(t, returned.Overdue(now))

	assert.True(t, lost.Lost)
	assert.False(t, lost.Open())

	assert.False(t, unknown.Exists)
	assert.False(t, unknown.Open())
}

func Test_OverdueFineAmount(t *testing.T) {
	dueDate := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		returnedAt     time.Time
		expectedDays   int64
		expectedAmount decimal.Decimal
	}{
		{
			name:           "returned on time",
			returnedAt:     dueDate,
			expectedDays:   0,
			expectedAmount: decimal.Zero,
		},
		{
			name:           "returned early",
			returnedAt:     dueDate.Add(-48 * time.Hour),
			expectedDays:   0,
			expectedAmount: decimal.Zero,
		},
		{
			name:           "one hour late counts as one day",
			returnedAt:     dueDate.Add(time.Hour),
			expectedDays:   1,
			expectedAmount: decimal.NewFromFloat(0.50),
		},
		{
			name:           "exactly three days late",
			returnedAt:     dueDate.Add(72 * time.Hour),
			expectedDays:   3,
			expectedAmount: decimal.NewFromFloat(1.50),
		},
		{
			name:           "three days and one hour late counts as four days",
			returnedAt:     dueDate.Add(73 * time.Hour),
			expectedDays:   4,
			expectedAmount: decimal.NewFromFloat(2.00),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			days, amount := core.OverdueFineAmount(dueDate, tc.returnedAt, core.DefaultPolicy())

			// assert
			assert.Equal(t, tc.expectedDays, days)
			assert.True(t, tc.expectedAmount.Equal(amount),
				"Expected %s but got %s", tc.expectedAmount, amount)
		})
	}
}

func Test_HasPendingOverdueFine(t *testing.T) {
	// arrange
	loanID := uuid.New().String()
	memberID := uuid.New().String()
	fineID := uuid.New().String()
	now := time.Now()

	issued := core.DomainEvents{
		core.BuildFineIssued(fineID, memberID, loanID, core.FineTypeOverdue, decimal.NewFromFloat(1.50), "", now.Add(-10*time.Hour)),
	}

	// act + assert
	assert.True(t, core.HasPendingOverdueFine(issued, loanID))

	assert.False(t, core.HasPendingOverdueFine(
		append(issued, core.BuildFinePaid(fineID, memberID, loanID, decimal.NewFromFloat(1.50), now)), loanID))

	assert.False(t, core.HasPendingOverdueFine(
		append(issued, core.BuildFineWaived(fineID, memberID, loanID, decimal.NewFromFloat(1.50), now)), loanID))

	assert.False(t, core.HasPendingOverdueFine(issued, uuid.New().String()),
		"A fine for another loan must not count")
}

func Test_HasPendingOverdueFine_IgnoresOtherFineTypes(t *testing.T) {
	// arrange
	loanID := uuid.New().String()
	memberID := uuid.New().String()
	now := time.Now()

	history := core.DomainEvents{
		core.BuildFineIssued(
			uuid.New().String(), memberID, loanID, core.FineTypeLost, decimal.NewFromFloat(25.00), "", now),
	}

	// act + assert
	assert.False(t, core.HasPendingOverdueFine(history, loanID))
}
