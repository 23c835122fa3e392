package reinstatemember_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation-go/lending/command/reinstatemember"
	"github.com/shelfwise/circulation-go/lending/core"
)

func Test_Decide_Success_SuspendedMemberIsReinstated(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenMemberRegistered(t, memberID, now.Add(-100*time.Hour)),
		core.BuildMemberSuspended(memberID.String(), "repeated late returns", now.Add(-50*time.Hour)),
	}

	command := reinstatemember.BuildCommand(memberID, now)

	// act
	result := reinstatemember.Decide(events, command)

	// assert
	assert.Equal(t, "success", result.Outcome)
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)

	reinstated, ok := result.Events[0].(core.MemberReinstated)
	assert.True(t, ok, "Expected MemberReinstated event")
	assert.Equal(t, memberID.String(), reinstated.MemberID)
}

func Test_Decide_Idempotent_WhenMemberIsNotSuspended(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenMemberRegistered(t, memberID, now.Add(-100*time.Hour)),
	}

	command := reinstatemember.BuildCommand(memberID, now)

	// act
	result := reinstatemember.Decide(events, command)

	// assert
	assert.Equal(t, "idempotent", result.Outcome)
	assert.Empty(t, result.Events)
}

func Test_Decide_UnknownMemberIsAnError(t *testing.T) {
	// arrange
	command := reinstatemember.BuildCommand(uuid.New(), time.Now())

	// act
	result := reinstatemember.Decide(core.DomainEvents{}, command)

	// assert
	assert.Equal(t, "error", result.Outcome)
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)

	declined, ok := result.Events[0].(core.OperationDeclined)
	assert.True(t, ok, "Expected OperationDeclined event")
	assert.Equal(t, "ReinstateMemberDeclined", declined.EventType())
	assert.Contains(t, declined.Reasons, "member is not registered")
}

func givenMemberRegistered(t *testing.T, memberID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildMemberRegistered(memberID.String(), "Test Member", at.Add(365*24*time.Hour), at)
}
