package issuefine_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation-go/lending/command/issuefine"
	"github.com/shelfwise/circulation-go/lending/core"
)

func Test_Decide_Success_ManualFineIsIssued(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenMemberRegistered(t, memberID, now.Add(-100*time.Hour)),
	}

	command := issuefine.BuildCommand(
		memberID, core.FineTypeDamaged, decimal.NewFromFloat(10.00), "water damage on cover", now)

	// act
	result := issuefine.Decide(events, command)

	// assert
	assert.Equal(t, "success", result.Outcome)
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)

	fine, ok := result.Events[0].(core.FineIssued)
	assert.True(t, ok, "Expected FineIssued event")
	assert.Equal(t, command.FineID.String(), fine.FineID)
	assert.Equal(t, memberID.String(), fine.MemberID)
	assert.Empty(t, fine.LoanID, "A staff-issued fine need not reference a loan")
	assert.Equal(t, core.FineTypeDamaged, fine.FineType)
	assert.True(t, decimal.NewFromFloat(10.00).Equal(fine.Amount))
	assert.Equal(t, "water damage on cover", fine.Description)
}

func Test_Decide_Success_FineTiedToALoan(t *testing.T) {
	// arrange
	memberID := uuid.New()
	loanID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenMemberRegistered(t, memberID, now.Add(-100*time.Hour)),
	}

	command := issuefine.BuildCommandForLoan(
		memberID, loanID, core.FineTypeOther, decimal.NewFromFloat(5.00), "missing dust jacket", now)

	// act
	result := issuefine.Decide(events, command)

	// assert
	assert.Equal(t, "success", result.Outcome)

	fine, ok := result.Events[0].(core.FineIssued)
	assert.True(t, ok, "Expected FineIssued event")
	assert.Equal(t, loanID.String(), fine.LoanID)
}

func Test_Decide_Idempotent_WhenFineAlreadyExists(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()

	command := issuefine.BuildCommand(
		memberID, core.FineTypeDamaged, decimal.NewFromFloat(10.00), "water damage on cover", now)

	events := core.DomainEvents{
		givenMemberRegistered(t, memberID, now.Add(-100*time.Hour)),
		core.BuildFineIssued(
			command.FineID.String(), memberID.String(), "",
			core.FineTypeDamaged, decimal.NewFromFloat(10.00), "water damage on cover", now.Add(-1*time.Hour)),
	}

	// act
	result := issuefine.Decide(events, command)

	// assert
	assert.Equal(t, "idempotent", result.Outcome)
	assert.Empty(t, result.Events)
}

//nolint:funlen
func Test_Decide_ValidationErrors(t *testing.T) {
	memberID := uuid.New()
	now := time.Now()

	registered := givenMemberRegistered(t, memberID, now.Add(-100*time.Hour))

	testCases := []struct {
		name            string
		events          core.DomainEvents
		amount          decimal.Decimal
		fineType        string
		expectedReasons []string
		expectedErrKind error
	}{
		{
			name:            "member is not registered",
			events:          core.DomainEvents{},
			amount:          decimal.NewFromFloat(10.00),
			fineType:        core.FineTypeDamaged,
			expectedReasons: []string{"member is not registered"},
			expectedErrKind: core.ErrNotFound,
		},
		{
			name:            "non-positive amount",
			events:          core.DomainEvents{registered},
			amount:          decimal.Zero,
			fineType:        core.FineTypeDamaged,
			expectedReasons: []string{"fine amount must be positive"},
			expectedErrKind: core.ErrValidation,
		},
		{
			name:            "unknown fine type",
			events:          core.DomainEvents{registered},
			amount:          decimal.NewFromFloat(10.00),
			fineType:        "Penalty",
			expectedReasons: []string{"unknown fine type"},
			expectedErrKind: core.ErrValidation,
		},
		{
			name:     "all violations reported together",
			events:   core.DomainEvents{},
			amount:   decimal.NewFromFloat(-1.00),
			fineType: "Penalty",
			expectedReasons: []string{
				"member is not registered",
				"fine amount must be positive",
				"unknown fine type",
			},
			expectedErrKind: core.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := issuefine.BuildCommand(memberID, tc.fineType, tc.amount, "", now)

			// act
			result := issuefine.Decide(tc.events, command)

			// assert
			assert.Equal(t, "error", result.Outcome)
			assert.ErrorIs(t, result.HasError(), tc.expectedErrKind)
			assert.Len(t, result.Events, 1)

			declined, ok := result.Events[0].(core.OperationDeclined)
			assert.True(t, ok, "Expected OperationDeclined event")
			assert.Equal(t, "IssueFineDeclined", declined.EventType())
			for _, reason := range tc.expectedReasons {
				assert.Contains(t, declined.Reasons, reason)
			}
		})
	}
}

func givenMemberRegistered(t *testing.T, memberID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildMemberRegistered(memberID.String(), "Test Member", at.Add(365*24*time.Hour), at)
}
