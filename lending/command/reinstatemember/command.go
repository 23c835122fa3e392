package reinstatemember

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "ReinstateMember"
)

// Command represents the intent to restore a suspended member's borrowing
// privileges.
type Command struct {
	MemberID   uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
