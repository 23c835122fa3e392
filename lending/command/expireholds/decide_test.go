package expireholds_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation-go/lending/command/expireholds"
	"github.com/shelfwise/circulation-go/lending/core"
)

func Test_Decide_Success_ExpiresLapsedHoldAndReoffersCopy(t *testing.T) {
	// arrange - A's hold lapsed, B waits next in queue
	memberAID := uuid.New()
	memberBID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	reservationAID := uuid.New()
	reservationBID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenCopyAddedToCirculation(t, copyID, titleID, now.Add(-200*time.Hour)),
		givenReservationPlaced(t, reservationAID, memberAID, titleID, now.Add(-100*time.Hour)),
		givenReservationPlaced(t, reservationBID, memberBID, titleID, now.Add(-99*time.Hour)),
		givenReservationFulfilled(
			t, reservationAID, memberAID, titleID, copyID, now.Add(-80*time.Hour), now.Add(-8*time.Hour)),
	}

	command := expireholds.BuildCommand(titleID, now)

	// act
	result := expireholds.Decide(events, command, core.DefaultPolicy())

	// assert - the expiry and the new hold for B, atomically
	assert.Equal(t, "success", result.Outcome)
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 2)

	expired, ok := result.Events[0].(core.ReservationExpired)
	assert.True(t, ok, "Expected ReservationExpired event")
	assert.Equal(t, reservationAID.String(), expired.ReservationID)
	assert.Equal(t, copyID.String(), expired.CopyID)

	fulfilled, ok := result.Events[1].(core.ReservationFulfilled)
	assert.True(t, ok, "Expected ReservationFulfilled event")
	assert.Equal(t, reservationBID.String(), fulfilled.ReservationID)
	assert.Equal(t, memberBID.String(), fulfilled.MemberID)
	assert.Equal(t, copyID.String(), fulfilled.CopyID)

	expectedHoldUntil := core.ToOccurredAt(command.OccurredAt.Add(core.DefaultPolicy().HoldWindow))
	assert.Equal(t, expectedHoldUntil, fulfilled.HoldUntil)
}

func Test_Decide_Success_ExpiredHoldWithEmptyQueue_OnlyExpires(t *testing.T) {
	// arrange - A's hold lapsed and nobody else waits
	memberAID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	reservationAID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenCopyAddedToCirculation(t, copyID, titleID, now.Add(-200*time.Hour)),
		givenReservationPlaced(t, reservationAID, memberAID, titleID, now.Add(-100*time.Hour)),
		givenReservationFulfilled(
			t, reservationAID, memberAID, titleID, copyID, now.Add(-80*time.Hour), now.Add(-8*time.Hour)),
	}

	command := expireholds.BuildCommand(titleID, now)

	// act
	result := expireholds.Decide(events, command, core.DefaultPolicy())

	// assert
	assert.Equal(t, "success", result.Outcome)
	assert.Len(t, result.Events, 1)

	_, ok := result.Events[0].(core.ReservationExpired)
	assert.True(t, ok, "Expected ReservationExpired event")
}

func Test_Decide_Success_MultipleLapsedHolds(t *testing.T) {
	// arrange - two lapsed holds, one waiter: one copy reoffered, one left free
	memberAID := uuid.New()
	memberBID := uuid.New()
	memberCID := uuid.New()
	copy1ID := uuid.New()
	copy2ID := uuid.New()
	titleID := uuid.New()
	reservationAID := uuid.New()
	reservationBID := uuid.New()
	reservationCID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenCopyAddedToCirculation(t, copy1ID, titleID, now.Add(-200*time.Hour)),
		givenCopyAddedToCirculation(t, copy2ID, titleID, now.Add(-200*time.Hour)),
		givenReservationPlaced(t, reservationAID, memberAID, titleID, now.Add(-100*time.Hour)),
		givenReservationPlaced(t, reservationBID, memberBID, titleID, now.Add(-99*time.Hour)),
		givenReservationPlaced(t, reservationCID, memberCID, titleID, now.Add(-98*time.Hour)),
		givenReservationFulfilled(
			t, reservationAID, memberAID, titleID, copy1ID, now.Add(-80*time.Hour), now.Add(-8*time.Hour)),
		givenReservationFulfilled(
			t, reservationBID, memberBID, titleID, copy2ID, now.Add(-79*time.Hour), now.Add(-7*time.Hour)),
	}

	command := expireholds.BuildCommand(titleID, now)

	// act
	result := expireholds.Decide(events, command, core.DefaultPolicy())

	// assert - two expiries plus one fulfillment for C
	assert.Equal(t, "success", result.Outcome)
	assert.Len(t, result.Events, 3)

	fulfilled, ok := result.Events[2].(core.ReservationFulfilled)
	assert.True(t, ok, "Expected ReservationFulfilled event")
	assert.Equal(t, reservationCID.String(), fulfilled.ReservationID)
}

func Test_Decide_Idempotent_WhenNoHoldLapsed(t *testing.T) {
	// arrange - the hold window is still open
	memberAID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	reservationAID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenCopyAddedToCirculation(t, copyID, titleID, now.Add(-200*time.Hour)),
		givenReservationPlaced(t, reservationAID, memberAID, titleID, now.Add(-100*time.Hour)),
		givenReservationFulfilled(
			t, reservationAID, memberAID, titleID, copyID, now.Add(-1*time.Hour), now.Add(71*time.Hour)),
	}

	command := expireholds.BuildCommand(titleID, now)

	// act
	result := expireholds.Decide(events, command, core.DefaultPolicy())

	// assert
	assert.Equal(t, "idempotent", result.Outcome)
	assert.Empty(t, result.Events)
}

func Test_Decide_Idempotent_WhenHoldWasClaimed(t *testing.T) {
	// arrange - the holder checked the copy out before the window closed
	memberAID := uuid.New()
	copyID := uuid.New()
	titleID := uuid.New()
	reservationAID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenCopyAddedToCirculation(t, copyID, titleID, now.Add(-200*time.Hour)),
		givenReservationPlaced(t, reservationAID, memberAID, titleID, now.Add(-100*time.Hour)),
		givenReservationFulfilled(
			t, reservationAID, memberAID, titleID, copyID, now.Add(-80*time.Hour), now.Add(-8*time.Hour)),
		core.BuildLoanOpened(
			uuid.New().String(), memberAID.String(), copyID.String(), titleID.String(),
			now.Add(300*time.Hour), now.Add(-50*time.Hour)),
	}

	command := expireholds.BuildCommand(titleID, now)

	// act
	result := expireholds.Decide(events, command, core.DefaultPolicy())

	// assert - claimed holds are gone, nothing to expire
	assert.Equal(t, "idempotent", result.Outcome)
}

// Test helper functions with t.Helper() for better error reporting

func givenCopyAddedToCirculation(t *testing.T, copyID, titleID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildCopyAddedToCirculation(
		copyID.String(),
		titleID.String(),
		"978-1-098-10013-1",
		"Test Title",
		"Test Author",
		at,
	)
}

func givenReservationPlaced(t *testing.T, reservationID, memberID, titleID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildReservationPlaced(
		reservationID.String(),
		memberID.String(),
		titleID.String(),
		at,
	)
}

func givenReservationFulfilled(
	t *testing.T,
	reservationID, memberID, titleID, copyID uuid.UUID,
	at, holdUntil time.Time,
) core.DomainEvent {

	t.Helper()
	return core.BuildReservationFulfilled(
		reservationID.String(),
		memberID.String(),
		titleID.String(),
		copyID.String(),
		holdUntil,
		at,
	)
}
