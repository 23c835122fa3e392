package registermember_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation-go/lending/command/registermember"
	"github.com/shelfwise/circulation-go/lending/core"
)

func Test_Decide_Success_NewMemberIsRegistered(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()

	command := registermember.BuildCommand(memberID, "Ada Lovelace", now.Add(365*24*time.Hour), now)

	// act
	result := registermember.Decide(core.DomainEvents{}, command)

	// assert
	assert.Equal(t, "success", result.Outcome)
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)

	registered, ok := result.Events[0].(core.MemberRegistered)
	assert.True(t, ok, "Expected MemberRegistered event")
	assert.Equal(t, memberID.String(), registered.MemberID)
	assert.Equal(t, "Ada Lovelace", registered.Name)
	assert.Equal(t, core.ToOccurredAt(now.Add(365*24*time.Hour)), registered.MembershipExpiresAt)
}

func Test_Decide_Idempotent_WhenMemberIsAlreadyRegistered(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		core.BuildMemberRegistered(
			memberID.String(), "Ada Lovelace", now.Add(300*24*time.Hour), now.Add(-10*time.Hour)),
	}

	command := registermember.BuildCommand(memberID, "Ada Lovelace", now.Add(365*24*time.Hour), now)

	// act
	result := registermember.Decide(events, command)

	// assert
	assert.Equal(t, "idempotent", result.Outcome)
	assert.Empty(t, result.Events)
	assert.NoError(t, result.HasError())
}

func Test_Decide_ValidationErrors(t *testing.T) {
	memberID := uuid.New()
	now := time.Now()

	testCases := []struct {
		name            string
		memberName      string
		expiresAt       time.Time
		expectedReasons []string
	}{
		{
			name:            "empty name",
			memberName:      "",
			expiresAt:       now.Add(365 * 24 * time.Hour),
			expectedReasons: []string{"member name must not be empty"},
		},
		{
			name:            "expiry in the past",
			memberName:      "Ada Lovelace",
			expiresAt:       now.Add(-time.Hour),
			expectedReasons: []string{"membership expiry must be in the future"},
		},
		{
			name:       "empty name and expiry in the past",
			memberName: "",
			expiresAt:  now.Add(-time.Hour),
			expectedReasons: []string{
				"member name must not be empty",
				"membership expiry must be in the future",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := registermember.BuildCommand(memberID, tc.memberName, tc.expiresAt, now)

			// act
			result := registermember.Decide(core.DomainEvents{}, command)

			// assert
			assert.Equal(t, "error", result.Outcome)
			assert.ErrorIs(t, result.HasError(), core.ErrValidation)
			assert.Len(t, result.Events, 1)

			declined, ok := result.Events[0].(core.OperationDeclined)
			assert.True(t, ok, "Expected OperationDeclined event")
			assert.Equal(t, "RegisterMemberDeclined", declined.EventType())

			for _, reason := range tc.expectedReasons {
				assert.Contains(t, declined.Reasons, reason)
			}
		})
	}
}
