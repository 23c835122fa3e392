package loansduesoon

import (
	"time"
)

const (
	queryType = "LoansDueSoon"
)

// Query represents the intent to find open loans whose due date falls within
// the given window, typically driven by the courtesy notice scheduler.
type Query struct {
	AsOf   time.Time
	Within time.Duration
}

// BuildQuery creates a new Query covering [AsOf, AsOf+Within].
func BuildQuery(asOf time.Time, within time.Duration) Query {
	return Query{
		AsOf:   asOf,
		Within: within,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
