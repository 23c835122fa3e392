package memberaccount

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shelfwise/circulation-go/lending/core"
)

// LoanInfo represents one open loan on the account. Overdue is derived from
// the due date at query time.
type LoanInfo struct {
	LoanID       core.LoanIDString
	CopyID       core.CopyIDString
	TitleID      core.TitleIDString
	CheckedOutAt time.Time
	DueDate      time.Time
	RenewalCount int
	Overdue      bool
}

// FineInfo represents one fine on the account.
type FineInfo struct {
	FineID      core.FineIDString
	LoanID      core.LoanIDString
	FineType    string
	Amount      decimal.Decimal
	Status      string
	Description string
	IssuedAt    time.Time
}

// ReservationInfo represents one active or fulfilled reservation on the
// account.
type ReservationInfo struct {
	ReservationID core.ReservationIDString
	TitleID       core.TitleIDString
	Status        string
	PlacedAt      time.Time
	HoldUntil     time.Time
}

// MemberAccount represents the query result: the member's loans, fines, and
// reservations with the derived balance. The balance sums pending fines
// only.
type MemberAccount struct {
	MemberID           core.MemberIDString
	Exists             bool
	Name               string
	Status             string
	OpenLoans          []LoanInfo
	Fines              []FineInfo
	Reservations       []ReservationInfo
	OutstandingBalance decimal.Decimal
}
