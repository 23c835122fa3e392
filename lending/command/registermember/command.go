package registermember

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "RegisterMember"
)

// Command represents the intent to register a new library member.
type Command struct {
	MemberID            uuid.UUID
	Name                string
	MembershipExpiresAt core.OccurredAtTS
	OccurredAt          core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID uuid.UUID, name string, membershipExpiresAt time.Time, occurredAt time.Time) Command {
	return Command{
		MemberID:            memberID,
		Name:                name,
		MembershipExpiresAt: core.ToOccurredAt(membershipExpiresAt),
		OccurredAt:          core.ToOccurredAt(occurredAt),
	}
}
