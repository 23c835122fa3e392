package core

import (
	"sort"
	"time"
)

// Reservation status values. Only Active and Fulfilled reservations occupy
// the queue; the rest are terminal.
const (
	ReservationStatusActive    = "Active"
	ReservationStatusFulfilled = "Fulfilled"
	ReservationStatusClaimed   = "Claimed"
	ReservationStatusCancelled = "Cancelled"
	ReservationStatusExpired   = "Expired"
)

// Copy status values derived from the event history.
const (
	CopyStatusAvailable = "Available"
	CopyStatusOnLoan    = "OnLoan"
	CopyStatusReserved  = "Reserved"
	CopyStatusDamaged   = "Damaged"
	CopyStatusLost      = "Lost"
	CopyStatusRemoved   = "Removed"
)

// CopyState is the derived state of one physical copy.
type CopyState struct {
	CopyID        CopyIDString
	InCirculation bool
	Damaged       bool
	Lost          bool
	OpenLoanID    LoanIDString
	BorrowerID    MemberIDString
	// set while the copy is held for a fulfilled reservation
	HeldForReservationID ReservationIDString
	HeldForMemberID      MemberIDString
	HoldUntil            time.Time
}

// Status reports the copy status in precedence order. A held copy stays
// Reserved until the hold is claimed, expired by the sweep, or cancelled,
// even when HoldUntil has already passed.
func (c CopyState) Status() string {
	switch {
	case c.Lost:
		return CopyStatusLost
	case c.Damaged:
		return CopyStatusDamaged
	case !c.InCirculation:
		return CopyStatusRemoved
	case c.OpenLoanID != "":
		return CopyStatusOnLoan
	case c.HeldForReservationID != "":
		return CopyStatusReserved
	default:
		return CopyStatusAvailable
	}
}

// ReservationState is the derived state of one reservation in a title's
// queue.
type ReservationState struct {
	ReservationID ReservationIDString
	MemberID      MemberIDString
	Status        string
	PlacedAt      time.Time
	CopyID        CopyIDString // set once fulfilled
	HoldUntil     time.Time    // set once fulfilled
}

// TitleCirculation is the full circulation state of one title: its copies
// and its reservation queue in placement order.
type TitleCirculation struct {
	TitleID      TitleIDString
	Copies       map[CopyIDString]*CopyState
	Reservations []*ReservationState

	reservationsByID map[ReservationIDString]*ReservationState
}

// ProjectTitleCirculation folds the event history into the circulation state
// of one title.
func ProjectTitleCirculation(history DomainEvents, titleID TitleIDString) *TitleCirculation { //nolint:gocognit
	t := &TitleCirculation{
		TitleID:          titleID,
		Copies:           make(map[CopyIDString]*CopyState),
		reservationsByID: make(map[ReservationIDString]*ReservationState),
	}

	for _, event := range history {
		switch e := event.(type) {
		case CopyAddedToCirculation:
			if e.TitleID == titleID {
				t.Copies[e.CopyID] = &CopyState{CopyID: e.CopyID, InCirculation: true}
			}

		case CopyRemovedFromCirculation:
			if cp, ok := t.copyOf(e.TitleID, e.CopyID); ok {
				cp.InCirculation = false
			}

		case CopyMarkedDamaged:
			if cp, ok := t.copyOf(e.TitleID, e.CopyID); ok {
				cp.Damaged = true
			}

		case LoanOpened:
			if cp, ok := t.copyOf(e.TitleID, e.CopyID); ok {
				cp.OpenLoanID = e.LoanID
				cp.BorrowerID = e.MemberID

				if cp.HeldForReservationID != "" && cp.HeldForMemberID == e.MemberID {
					if reservation, found := t.reservationsByID[cp.HeldForReservationID]; found {
						reservation.Status = ReservationStatusClaimed
					}
					cp.clearHold()
				}
			}

		case LoanReturned:
			if cp, ok := t.copyOf(e.TitleID, e.CopyID); ok {
				cp.OpenLoanID = ""
				cp.BorrowerID = ""
			}

		case LoanReportedLost:
			if cp, ok := t.copyOf(e.TitleID, e.CopyID); ok {
				cp.OpenLoanID = ""
				cp.BorrowerID = ""
				cp.Lost = true
			}

		case ReservationPlaced:
			if e.TitleID == titleID {
				reservation := &ReservationState{
					ReservationID: e.ReservationID,
					MemberID:      e.MemberID,
					Status:        ReservationStatusActive,
					PlacedAt:      e.OccurredAt,
				}
				t.Reservations = append(t.Reservations, reservation)
				t.reservationsByID[e.ReservationID] = reservation
			}

		case ReservationCancelled:
			if reservation, ok := t.reservationOf(e.TitleID, e.ReservationID); ok {
				if cp, held := t.Copies[reservation.CopyID]; held && cp.HeldForReservationID == e.ReservationID {
					cp.clearHold()
				}
				reservation.Status = ReservationStatusCancelled
			}

		case ReservationFulfilled:
			if reservation, ok := t.reservationOf(e.TitleID, e.ReservationID); ok {
				reservation.Status = ReservationStatusFulfilled
				reservation.CopyID = e.CopyID
				reservation.HoldUntil = e.HoldUntil

				if cp, found := t.Copies[e.CopyID]; found {
					cp.HeldForReservationID = e.ReservationID
					cp.HeldForMemberID = e.MemberID
					cp.HoldUntil = e.HoldUntil
				}
			}

		case ReservationExpired:
			if reservation, ok := t.reservationOf(e.TitleID, e.ReservationID); ok {
				reservation.Status = ReservationStatusExpired

				if cp, found := t.Copies[e.CopyID]; found && cp.HeldForReservationID == e.ReservationID {
					cp.clearHold()
				}
			}
		}
	}

	return t
}

func (t *TitleCirculation) copyOf(titleID TitleIDString, copyID CopyIDString) (*CopyState, bool) {
	if titleID != t.TitleID {
		return nil, false
	}

	cp, ok := t.Copies[copyID]

	return cp, ok
}

func (t *TitleCirculation) reservationOf(titleID TitleIDString, reservationID ReservationIDString) (*ReservationState, bool) {
	if titleID != t.TitleID {
		return nil, false
	}

	reservation, ok := t.reservationsByID[reservationID]

	return reservation, ok
}

func (c *CopyState) clearHold() {
	c.HeldForReservationID = ""
	c.HeldForMemberID = ""
	c.HoldUntil = time.Time{}
}

// ReservationByID returns the reservation with the given ID, if the title
// has one.
func (t *TitleCirculation) ReservationByID(reservationID ReservationIDString) (*ReservationState, bool) {
	reservation, ok := t.reservationsByID[reservationID]

	return reservation, ok
}

// AvailableCopies returns the copies that are lendable to anyone right now.
// Held copies are excluded even when their hold window has lapsed; only the
// expiry sweep releases them.
func (t *TitleCirculation) AvailableCopies() []*CopyState {
	var available []*CopyState
	for _, cp := range t.Copies {
		if cp.Status() == CopyStatusAvailable {
			available = append(available, cp)
		}
	}

	sort.Slice(available, func(i, j int) bool {
		return available[i].CopyID < available[j].CopyID
	})

	return available
}

// CopyHeldFor returns the copy currently held for the given member, if any.
func (t *TitleCirculation) CopyHeldFor(memberID MemberIDString) (*CopyState, bool) {
	for _, cp := range t.Copies {
		if cp.Status() == CopyStatusReserved && cp.HeldForMemberID == memberID {
			return cp, true
		}
	}

	return nil, false
}

// NextActiveReservation returns the oldest reservation still waiting for a
// copy, preserving first-come-first-served order.
func (t *TitleCirculation) NextActiveReservation() (*ReservationState, bool) {
	for _, reservation := range t.Reservations {
		if reservation.Status == ReservationStatusActive {
			return reservation, true
		}
	}

	return nil, false
}

// ActiveReservations returns the waiting queue in placement order.
func (t *TitleCirculation) ActiveReservations() []*ReservationState {
	var active []*ReservationState
	for _, reservation := range t.Reservations {
		if reservation.Status == ReservationStatusActive {
			active = append(active, reservation)
		}
	}

	return active
}

// OpenHolds returns the fulfilled reservations whose copy is still waiting
// to be picked up.
func (t *TitleCirculation) OpenHolds() []*ReservationState {
	var holds []*ReservationState
	for _, reservation := range t.Reservations {
		if reservation.Status == ReservationStatusFulfilled {
			holds = append(holds, reservation)
		}
	}

	return holds
}

// HasActiveReservationFor reports whether the member already has an Active or
// Fulfilled reservation for this title.
func (t *TitleCirculation) HasActiveReservationFor(memberID MemberIDString) bool {
	for _, reservation := range t.Reservations {
		if reservation.MemberID != memberID {
			continue
		}

		if reservation.Status == ReservationStatusActive || reservation.Status == ReservationStatusFulfilled {
			return true
		}
	}

	return false
}

// HasWaiters reports whether anyone is waiting or holding, which blocks
// renewals on this title.
func (t *TitleCirculation) HasWaiters() bool {
	for _, reservation := range t.Reservations {
		if reservation.Status == ReservationStatusActive || reservation.Status == ReservationStatusFulfilled {
			return true
		}
	}

	return false
}
