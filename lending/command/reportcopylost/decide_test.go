package reportcopylost_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation-go/lending/command/reportcopylost"
	"github.com/shelfwise/circulation-go/lending/core"
)

func Test_Decide_Success_LostLoanIsClosedAndReplacementFeeCharged(t *testing.T) {
	// arrange
	loanID := uuid.New()
	memberID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenLoanOpened(t, loanID, memberID, copyID, titleID, now.Add(-48*time.Hour), now.Add(100*time.Hour)),
	}

	command := reportcopylost.BuildCommand(loanID, now)

	// act
	result := reportcopylost.Decide(events, command, core.DefaultPolicy())

	// assert - the loan closes and the fee is charged in one atomic append
	assert.Equal(t, "success", result.Outcome)
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 2)

	lost, ok := result.Events[0].(core.LoanReportedLost)
	assert.True(t, ok, "Expected LoanReportedLost event")
	assert.Equal(t, loanID.String(), lost.LoanID)
	assert.Equal(t, memberID.String(), lost.MemberID)
	assert.Equal(t, copyID.String(), lost.CopyID)

	fee, ok := result.Events[1].(core.FineIssued)
	assert.True(t, ok, "Expected FineIssued event")
	assert.Equal(t, command.ReplacementFineID.String(), fee.FineID)
	assert.Equal(t, memberID.String(), fee.MemberID)
	assert.Equal(t, loanID.String(), fee.LoanID)
	assert.Equal(t, core.FineTypeLost, fee.FineType)
	assert.True(t, core.DefaultPolicy().LostReplacementFee.Equal(fee.Amount))
}

func Test_Decide_Idempotent_WhenLoanIsAlreadyReportedLost(t *testing.T) {
	// arrange
	loanID := uuid.New()
	memberID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenLoanOpened(t, loanID, memberID, copyID, titleID, now.Add(-48*time.Hour), now.Add(100*time.Hour)),
		core.BuildLoanReportedLost(loanID.String(), memberID.String(), copyID.String(), titleID.String(), now.Add(-1*time.Hour)),
	}

	command := reportcopylost.BuildCommand(loanID, now)

	// act
	result := reportcopylost.Decide(events, command, core.DefaultPolicy())

	// assert - the replacement fee must not be charged twice
	assert.Equal(t, "idempotent", result.Outcome)
	assert.Empty(t, result.Events)
	assert.NoError(t, result.HasError())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	loanID := uuid.New()
	memberID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	now := time.Now()

	testCases := []struct {
		name            string
		events          core.DomainEvents
		expectedReason  string
		expectedErrKind error
	}{
		{
			name:            "loan does not exist",
			events:          core.DomainEvents{},
			expectedReason:  "loan does not exist",
			expectedErrKind: core.ErrNotFound,
		},
		{
			name: "loan is already returned",
			events: core.DomainEvents{
				givenLoanOpened(t, loanID, memberID, copyID, titleID, now.Add(-48*time.Hour), now.Add(100*time.Hour)),
				core.BuildLoanReturned(loanID.String(), memberID.String(), copyID.String(), titleID.String(), now.Add(-1*time.Hour)),
			},
			expectedReason:  "loan is already returned",
			expectedErrKind: core.ErrInvalidStateTransition,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := reportcopylost.BuildCommand(loanID, now)

			// act
			result := reportcopylost.Decide(tc.events, command, core.DefaultPolicy())

			// assert
			assert.Equal(t, "error", result.Outcome)
			assert.ErrorIs(t, result.HasError(), tc.expectedErrKind)
			assert.Len(t, result.Events, 1)

			declined, ok := result.Events[0].(core.OperationDeclined)
			assert.True(t, ok, "Expected OperationDeclined event")
			assert.Equal(t, "ReportCopyLostDeclined", declined.EventType())
			assert.Contains(t, declined.Reasons, tc.expectedReason)
		})
	}
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
