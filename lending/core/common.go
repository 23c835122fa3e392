package core

import (
	"time"
)

// Instead of implementing full value objects, alias types and helper methods
// are used for identifiers and timestamps.

// MemberIDString represents a member identifier.
type MemberIDString = string

// CopyIDString represents a copy identifier.
type CopyIDString = string

// TitleIDString represents a title identifier.
type TitleIDString = string

// LoanIDString represents a loan identifier.
type LoanIDString = string

// ReservationIDString represents a reservation identifier.
type ReservationIDString = string

// FineIDString represents a fine identifier.
type FineIDString = string

// ISBNString represents an ISBN identifier.
type ISBNString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and
// microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
