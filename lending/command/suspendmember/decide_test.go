package suspendmember_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation-go/lending/command/suspendmember"
	"github.com/shelfwise/circulation-go/lending/core"
)

func Test_Decide_Success_ActiveMemberIsSuspended(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenMemberRegistered(t, memberID, now.Add(-100*time.Hour)),
	}

	command := suspendmember.BuildCommand(memberID, "repeated late returns", now)

	// act
	result := suspendmember.Decide(events, command)

	// assert
	assert.Equal(t, "success", result.Outcome)
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)

	suspended, ok := result.Events[0].(core.MemberSuspended)
	assert.True(t, ok, "Expected MemberSuspended event")
	assert.Equal(t, memberID.String(), suspended.MemberID)
	assert.Equal(t, "repeated late returns", suspended.Reason)
}

func Test_Decide_Idempotent_WhenMemberIsAlreadySuspended(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenMemberRegistered(t, memberID, now.Add(-100*time.Hour)),
		core.BuildMemberSuspended(memberID.String(), "repeated late returns", now.Add(-1*time.Hour)),
	}

	command := suspendmember.BuildCommand(memberID, "repeated late returns", now)

	// act
	result := suspendmember.Decide(events, command)

	// assert
	assert.Equal(t, "idempotent", result.Outcome)
	assert.Empty(t, result.Events)
}

func Test_Decide_ReinstatedMemberCanBeSuspendedAgain(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenMemberRegistered(t, memberID, now.Add(-100*time.Hour)),
		core.BuildMemberSuspended(memberID.String(), "repeated late returns", now.Add(-50*time.Hour)),
		core.BuildMemberReinstated(memberID.String(), now.Add(-10*time.Hour)),
	}

	command := suspendmember.BuildCommand(memberID, "damaged a rare print", now)

	// act
	result := suspendmember.Decide(events, command)

	// assert
	assert.Equal(t, "success", result.Outcome)
	assert.Len(t, result.Events, 1)
}

func Test_Decide_UnknownMemberIsAnError(t *testing.T) {
	// arrange
	memberID := uuid.New()
	command := suspendmember.BuildCommand(memberID, "repeated late returns", time.Now())

	// act
	result := suspendmember.Decide(core.DomainEvents{}, command)

	// assert
	assert.Equal(t, "error", result.Outcome)
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)

	declined, ok := result.Events[0].(core.OperationDeclined)
	assert.True(t, ok, "Expected OperationDeclined event")
	assert.Equal(t, "SuspendMemberDeclined", declined.EventType())
	assert.Contains(t, declined.Reasons, "member is not registered")
}

func givenMemberRegistered(t *testing.T, memberID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildMemberRegistered(memberID.String(), "Test Member", at.Add(365*24*time.Hour), at)
}
