package waivefine

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "WaiveFine"
)

// Command represents the intent to forgive a pending fine. ActorID
// identifies the staff member for the audit trail and may be empty.
type Command struct {
	FineID     uuid.UUID
	ActorID    string
	Reason     string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(fineID uuid.UUID, reason string, occurredAt time.Time) Command {
	return Command{
		FineID:     fineID,
		Reason:     reason,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
