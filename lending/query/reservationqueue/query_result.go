package reservationqueue

import (
	"time"

	"github.com/shelfwise/circulation-go/lending/core"
)

// QueueEntry represents one waiting reservation with its derived position.
// Position 1 is next in line; positions are recomputed on every query, so
// cancellations ahead in the queue move everyone up.
type QueueEntry struct {
	ReservationID core.ReservationIDString
	MemberID      core.MemberIDString
	Position      int
	PlacedAt      time.Time
}

// HoldEntry represents one fulfilled reservation whose copy awaits pickup.
type HoldEntry struct {
	ReservationID core.ReservationIDString
	MemberID      core.MemberIDString
	CopyID        core.CopyIDString
	HoldUntil     time.Time
}

// ReservationQueue represents the query result: the title's waiting queue in
// first-come-first-served order plus the open holds.
type ReservationQueue struct {
	TitleID         core.TitleIDString
	AvailableCopies int
	Waiting         []QueueEntry
	Holds           []HoldEntry
}
