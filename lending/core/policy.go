package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Policy holds the configurable circulation rules. All decision functions
// take the policy as input so that rules stay explicit and testable.
type Policy struct {
	LoanPeriod            time.Duration   // standard loan length
	DailyOverdueRate      decimal.Decimal // fine accrued per started day overdue
	MaxActiveLoans        int
	MaxActiveReservations int
	MaxRenewals           int
	HoldWindow            time.Duration   // time a fulfilled reservation is held for pickup
	LostReplacementFee    decimal.Decimal // flat fee charged when a copy is reported lost
}

// DefaultPolicy returns the standard circulation policy.
func DefaultPolicy() Policy {
	return Policy{
		LoanPeriod:            14 * 24 * time.Hour,
		DailyOverdueRate:      decimal.NewFromFloat(0.50),
		MaxActiveLoans:        5,
		MaxActiveReservations: 3,
		MaxRenewals:           2,
		HoldWindow:            72 * time.Hour,
		LostReplacementFee:    decimal.NewFromInt(25),
	}
}
