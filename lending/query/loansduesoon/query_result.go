package loansduesoon

import (
	"time"

	"github.com/shelfwise/circulation-go/lending/core"
)

// DueLoan represents one open loan whose due date falls within the queried
// window.
type DueLoan struct {
	LoanID   core.LoanIDString
	MemberID core.MemberIDString
	CopyID   core.CopyIDString
	TitleID  core.TitleIDString
	DueDate  time.Time
}

// LoansDueSoon represents the query result, ordered by due date.
type LoansDueSoon struct {
	Loans []DueLoan
}
