package checkeligibility

import (
	"github.com/shopspring/decimal"

	"github.com/shelfwise/circulation-go/lending/core"
)

// EligibilityReport represents the query result: the member's standing and
// the outcome of the borrowing rules, with every blocking reason enumerated.
type EligibilityReport struct {
	MemberID               core.MemberIDString
	Exists                 bool
	Status                 string
	OpenLoanCount          int
	OverdueLoanCount       int
	OutstandingBalance     decimal.Decimal
	ActiveReservationCount int
	Eligible               bool
	AvailableSlots         int
	Reasons                []string
	Warnings               []string
}
