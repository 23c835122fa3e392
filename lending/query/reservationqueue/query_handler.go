package reservationqueue

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

// Handle executes the query and returns the derived reservation queue.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ReservationQueue, error) {
	entries, _, err := h.eventLog.Query(ctx, BuildEventFilter(query.TitleID))
	if err != nil {
		return ReservationQueue{}, err
	}

	history, err := shell.DomainEventsFrom(entries)
	if err != nil {
		return ReservationQueue{}, err
	}

	return ProjectReservationQueue(history, query), nil
}
