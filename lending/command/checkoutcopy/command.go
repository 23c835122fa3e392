package checkoutcopy

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "CheckOutCopy"
)

// Command represents the intent to check out a copy to a member. DueDate may
// be zero, in which case the policy's standard loan period applies.
type Command struct {
	LoanID     uuid.UUID
	MemberID   uuid.UUID
	CopyID     uuid.UUID
	TitleID    uuid.UUID
	DueDate    core.OccurredAtTS
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with a freshly generated loan identifier.
func BuildCommand(memberID uuid.UUID, copyID uuid.UUID, titleID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		LoanID:     uuid.New(),
		MemberID:   memberID,
		CopyID:     copyID,
		TitleID:    titleID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// BuildCommandWithDueDate creates a new Command with an explicit due date.
func BuildCommandWithDueDate(
	memberID uuid.UUID,
	copyID uuid.UUID,
	titleID uuid.UUID,
	dueDate time.Time,
	occurredAt time.Time,
) Command {

	command := BuildCommand(memberID, copyID, titleID, occurredAt)
	command.DueDate = core.ToOccurredAt(dueDate)

	return command
}
