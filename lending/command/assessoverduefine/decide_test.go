package assessoverduefine_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation-go/lending/command/assessoverduefine"
	"github.com/shelfwise/circulation-go/lending/core"
)

func Test_Decide_Success_OverdueLoanGetsAFineForTheAccruedDays(t *testing.T) {
	// arrange - due 3 whole days ago
	loanID := uuid.New()
	memberID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenLoanOpened(t, loanID, memberID, now.Add(-200*time.Hour), now.Add(-72*time.Hour)),
	}

	command := assessoverduefine.BuildCommand(loanID, now)

	// act
	result := assessoverduefine.Decide(events, command, core.DefaultPolicy())

	// assert
	assert.Equal(t, "success", result.Outcome)
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)

	fine, ok := result.Events[0].(core.FineIssued)
	assert.True(t, ok, "Expected FineIssued event")
	assert.Equal(t, command.FineID.String(), fine.FineID)
	assert.Equal(t, memberID.String(), fine.MemberID)
	assert.Equal(t, loanID.String(), fine.LoanID)
	assert.Equal(t, core.FineTypeOverdue, fine.FineType)
	assert.True(t, decimal.NewFromFloat(1.50).Equal(fine.Amount), "Expected 3 days at the daily rate")
	assert.Equal(t, "overdue by 3 day(s)", fine.Description)
}

func Test_Decide_Idempotent_RepeatedSweepsDoNotStackCharges(t *testing.T) {
	// arrange - an earlier sweep already issued the overdue fine
	loanID := uuid.New()
	memberID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenLoanOpened(t, loanID, memberID, now.Add(-200*time.Hour), now.Add(-72*time.Hour)),
		core.BuildFineIssued(
			uuid.New().String(), memberID.String(), loanID.String(),
			core.FineTypeOverdue, decimal.NewFromFloat(1.00), "overdue by 2 day(s)", now.Add(-24*time.Hour)),
	}

	command := assessoverduefine.BuildCommand(loanID, now)

	// act
	result := assessoverduefine.Decide(events, command, core.DefaultPolicy())

	// assert - at most one pending overdue fine per loan
	assert.Equal(t, "idempotent", result.Outcome)
	assert.Empty(t, result.Events)
}

func Test_Decide_SettledFineUnblocksTheNextSweep(t *testing.T) {
	// arrange - the earlier overdue fine was paid, the loan is still out
	loanID := uuid.New()
	memberID := uuid.New()
	fineID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenLoanOpened(t, loanID, memberID, now.Add(-200*time.Hour), now.Add(-72*time.Hour)),
		core.BuildFineIssued(
			fineID.String(), memberID.String(), loanID.String(),
			core.FineTypeOverdue, decimal.NewFromFloat(0.50), "overdue by 1 day(s)", now.Add(-48*time.Hour)),
		core.BuildFinePaid(fineID.String(), memberID.String(), loanID.String(), decimal.NewFromFloat(0.50), now.Add(-24*time.Hour)),
	}

	command := assessoverduefine.BuildCommand(loanID, now)

	// act
	result := assessoverduefine.Decide(events, command, core.DefaultPolicy())

	// assert
	assert.Equal(t, "success", result.Outcome)
	assert.Len(t, result.Events, 1)
}

func Test_Decide_Idempotent_WhenLoanIsNotOverdueOrClosed(t *testing.T) {
	loanID := uuid.New()
	memberID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	now := time.Now()

	testCases := []struct {
		name   string
		events core.DomainEvents
	}{
		{
			name: "loan is not yet due",
			events: core.DomainEvents{
				givenLoanOpened(t, loanID, memberID, now.Add(-24*time.Hour), now.Add(100*time.Hour)),
			},
		},
		{
			name: "loan was returned",
			events: core.DomainEvents{
				givenLoanOpened(t, loanID, memberID, now.Add(-200*time.Hour), now.Add(-72*time.Hour)),
				core.BuildLoanReturned(loanID.String(), memberID.String(), copyID.String(), titleID.String(), now.Add(-1*time.Hour)),
			},
		},
		{
			name: "renewal moved the due date out",
			events: core.DomainEvents{
				givenLoanOpened(t, loanID, memberID, now.Add(-200*time.Hour), now.Add(-72*time.Hour)),
				core.BuildLoanRenewed(loanID.String(), memberID.String(), copyID.String(), titleID.String(), now.Add(100*time.Hour), now.Add(-1*time.Hour)),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := assessoverduefine.BuildCommand(loanID, now)

			// act
			result := assessoverduefine.Decide(tc.events, command, core.DefaultPolicy())

			// assert
			assert.Equal(t, "idempotent", result.Outcome)
			assert.Empty(t, result.Events)
		})
	}
}

func Test_Decide_UnknownLoanIsAnError(t *testing.T) {
	// arrange
	command := assessoverduefine.BuildCommand(uuid.New(), time.Now())

	// act
	result := assessoverduefine.Decide(core.DomainEvents{}, command, core.DefaultPolicy())

	// assert
	assert.Equal(t, "error", result.Outcome)
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)

	declined, ok := result.Events[0].(core.OperationDeclined)
	assert.True(t, ok, "Expected OperationDeclined event")
	assert.Equal(t, "AssessOverdueFineDeclined", declined.EventType())
}

func givenLoanOpened(t *testing.T, loanID, memberID uuid.UUID, at, dueDate time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildLoanOpened(
		loanID.String(),
		memberID.String(),
		uuid.New().String(),
		uuid.New().String(),
		dueDate,
		at,
	)
}
