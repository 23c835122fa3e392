package titlesonhold

import (
	"time"
)

const (
	queryType = "TitlesOnHold"
)

// Query represents the intent to find titles with lapsed holds, typically
// driven by the expiry sweep scheduler. AsOf is the time holds are compared
// against.
type Query struct {
	AsOf time.Time
}

// BuildQuery creates a new Query with the provided reference time.
func BuildQuery(asOf time.Time) Query {
	return Query{
		AsOf: asOf,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
