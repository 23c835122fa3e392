package titlesonhold

import (
	"time"

	"github.com/shelfwise/circulation-go/lending/core"
)

// LapsedHold represents one hold whose pickup window has passed.
type LapsedHold struct {
	TitleID       core.TitleIDString
	ReservationID core.ReservationIDString
	MemberID      core.MemberIDString
	CopyID        core.CopyIDString
	HoldUntil     time.Time
}

// TitlesOnHold represents the query result: every title with at least one
// lapsed hold, for the expiry sweep to process.
type TitlesOnHold struct {
	TitleIDs    []core.TitleIDString
	LapsedHolds []LapsedHold
}
