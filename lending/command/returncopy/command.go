package returncopy

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "ReturnCopy"
)

// Command represents the intent to return a borrowed copy. OverdueFineID is
// generated up front so the decision stays deterministic; it is only used
// when the return is late and a fine gets issued.
type Command struct {
	LoanID        uuid.UUID
	Damaged       bool
	OverdueFineID uuid.UUID
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, damaged bool, occurredAt time.Time) Command {
	return Command{
		LoanID:        loanID,
		Damaged:       damaged,
		OverdueFineID: uuid.New(),
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
