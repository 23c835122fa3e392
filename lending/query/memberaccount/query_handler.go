package memberaccount

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

// Handle executes the query and returns the derived member account.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberAccount, error) {
	entries, _, err := h.eventLog.Query(ctx, BuildEventFilter(query.MemberID))
	if err != nil {
		return MemberAccount{}, err
	}

	history, err := shell.DomainEventsFrom(entries)
	if err != nil {
		return MemberAccount{}, err
	}

	return ProjectMemberAccount(history, query), nil
}
