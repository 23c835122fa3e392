package placereservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "PlaceReservation"
)

// Command represents the intent to join the waiting queue for a title.
type Command struct {
	ReservationID uuid.UUID
	MemberID      uuid.UUID
	TitleID       uuid.UUID
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with a freshly generated reservation
// identifier.
func BuildCommand(memberID uuid.UUID, titleID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		ReservationID: uuid.New(),
		MemberID:      memberID,
		TitleID:       titleID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
