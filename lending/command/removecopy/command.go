package removecopy

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "RemoveCopy"
)

// Command represents the intent to withdraw a copy from circulation.
type Command struct {
	CopyID     uuid.UUID
	TitleID    uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(copyID uuid.UUID, titleID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		CopyID:     copyID,
		TitleID:    titleID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
