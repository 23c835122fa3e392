package cancelreservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "CancelReservation"
)

// Command represents the intent to leave the waiting queue for a title.
type Command struct {
	ReservationID uuid.UUID
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(reservationID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
