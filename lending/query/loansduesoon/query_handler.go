package loansduesoon

import (
	"context"

	"github.com/shelfwise/circulation-go/lending/shell"
)

// QueryHandler orchestrates the query workflow: Query -> Unmarshal -> Project.
type QueryHandler struct {
	eventLog shell.EventLog
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventLog shell.EventLog) QueryHandler {
	return QueryHandler{
		eventLog: eventLog,
	}
}

// Handle executes the query and returns the loans falling due in the window.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LoansDueSoon, error) {
	entries, _, err := h.eventLog.Query(ctx, BuildEventFilter())
	if err != nil {
		return LoansDueSoon{}, err
	}

	history, err := shell.DomainEventsFrom(entries)
	if err != nil {
		return LoansDueSoon{}, err
	}

	return ProjectLoansDueSoon(history, query), nil
}
