package issuefine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	commandType = "IssueFine"
)

// Command represents the intent to charge a fine to a member manually.
// LoanID is optional; staff-issued fines need not reference a loan.
type Command struct {
	FineID      uuid.UUID
	MemberID    uuid.UUID
	LoanID      core.LoanIDString
	FineType    string
	Amount      decimal.Decimal
	Description string
	OccurredAt  core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with a freshly generated fine
// identifier.
func BuildCommand(
	memberID uuid.UUID,
	fineType string,
	amount decimal.Decimal,
	description string,
	occurredAt time.Time,
) Command {

	return Command{
		FineID:      uuid.New(),
		MemberID:    memberID,
		FineType:    fineType,
		Amount:      amount,
		Description: description,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

// BuildCommandForLoan creates a new Command tied to a loan.
func BuildCommandForLoan(
	memberID uuid.UUID,
	loanID uuid.UUID,
	fineType string,
	amount decimal.Decimal,
	description string,
	occurredAt time.Time,
) Command {

	command := BuildCommand(memberID, fineType, amount, description, occurredAt)
	command.LoanID = loanID.String()

	return command
}
