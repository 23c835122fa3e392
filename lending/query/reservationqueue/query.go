package reservationqueue

import (
	"github.com/google/uuid"
)

const (
	queryType = "ReservationQueue"
)

// Query represents the intent to view the waiting queue for a title.
type Query struct {
	TitleID uuid.UUID
}

// BuildQuery creates a new Query with the provided title ID.
func BuildQuery(titleID uuid.UUID) Query {
	return Query{
		TitleID: titleID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
