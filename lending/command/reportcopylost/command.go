package reportcopylost

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "ReportCopyLost"
)

// Command represents the intent to report a borrowed copy as lost.
// ReplacementFineID is generated up front so the decision stays
// deterministic.
type Command struct {
	LoanID            uuid.UUID
	ReplacementFineID uuid.UUID
	OccurredAt        core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		LoanID:            loanID,
		ReplacementFineID: uuid.New(),
		OccurredAt:        core.ToOccurredAt(occurredAt),
	}
}
