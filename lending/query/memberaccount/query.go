package memberaccount

import (
	"time"

	"github.com/google/uuid"
)

const (
	queryType = "MemberAccount"
)

// Query represents the intent to view a member's full circulation account.
// At is the point in time derived fields like Overdue are evaluated against.
type Query struct {
	MemberID uuid.UUID
	At       time.Time
}

// BuildQuery creates a new Query with the provided member ID.
func BuildQuery(memberID uuid.UUID, at time.Time) Query {
	return Query{
		MemberID: memberID,
		At:       at,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
