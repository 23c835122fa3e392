package suspendmember

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "SuspendMember"
)

// Command represents the intent to suspend a member's borrowing privileges.
type Command struct {
	MemberID   uuid.UUID
	Reason     string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID uuid.UUID, reason string, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		Reason:     reason,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
