package expireholds

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "ExpireHolds"
)

// Command represents the sweep that expires lapsed holds for one title and
// reoffers the freed copies to the next members in the queue.
type Command struct {
	TitleID    uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(titleID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		TitleID:    titleID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
