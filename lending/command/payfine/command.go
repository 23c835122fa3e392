package payfine

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "PayFine"
)

// Command represents the intent to settle a pending fine by payment.
type Command struct {
	FineID     uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(fineID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		FineID:     fineID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
