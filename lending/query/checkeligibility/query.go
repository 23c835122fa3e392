package checkeligibility

import (
	"time"

	"github.com/google/uuid"
)

const (
	queryType = "CheckEligibility"
)

// Query represents the intent to check whether a member may borrow right
// now. At is the point in time eligibility is evaluated against.
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
