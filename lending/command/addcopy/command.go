package addcopy

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "AddCopy"
)

// Command represents the intent to add a physical copy of a title to
// circulation.
type Command struct {
	CopyID     uuid.UUID
	TitleID    uuid.UUID
	ISBN       core.ISBNString
	TitleName  string
	Authors    string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	copyID uuid.UUID,
	titleID uuid.UUID,
	isbn core.ISBNString,
	titleName string,
	authors string,
	occurredAt time.Time,
) Command {

	return Command{
		CopyID:     copyID,
		TitleID:    titleID,
		ISBN:       isbn,
		TitleName:  titleName,
		Authors:    authors,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
