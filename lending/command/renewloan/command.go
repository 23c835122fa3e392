package renewloan

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "RenewLoan"
)

// Command represents the intent to extend an open loan. RequestedDueDate may
// be zero, in which case the policy's standard loan period applies from the
// time of renewal.
type Command struct {
	LoanID           uuid.UUID
	RequestedDueDate core.OccurredAtTS
	OccurredAt       core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// BuildCommandWithDueDate creates a new Command with an explicit requested
// due date.
func BuildCommandWithDueDate(loanID uuid.UUID, requestedDueDate time.Time, occurredAt time.Time) Command {
	command := BuildCommand(loanID, occurredAt)
	command.RequestedDueDate = core.ToOccurredAt(requestedDueDate)

	return command
}
