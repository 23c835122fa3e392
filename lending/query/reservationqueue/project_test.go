package reservationqueue_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation-go/lending/core"
	"github.com/shelfwise/circulation-go/lending/query/reservationqueue"
)

func Test_ProjectReservationQueue_PositionsFollowPlacementOrder(t *testing.T) {
	// arrange
	titleID := uuid.New()
	now := time.Now()

	firstID := uuid.New().String()
	secondID := uuid.New().String()
	thirdID := uuid.New().String()

	history := core.DomainEvents{
		givenCopyAdded(t, uuid.New().String(), titleID.String(), now.Add(-20*time.Hour)),
		core.BuildLoanOpened(uuid.New().String(), uuid.New().String(), uuid.New().String(), titleID.String(), now.Add(100*time.Hour), now.Add(-15*time.Hour)),
		core.BuildReservationPlaced(firstID, uuid.New().String(), titleID.String(), now.Add(-10*time.Hour)),
		core.BuildReservationPlaced(secondID, uuid.New().String(), titleID.String(), now.Add(-8*time.Hour)),
		core.BuildReservationPlaced(thirdID, uuid.New().String(), titleID.String(), now.Add(-6*time.Hour)),
	}

	// act
	queue := reservationqueue.ProjectReservationQueue(history, reservationqueue.BuildQuery(titleID))

	// assert
	assert.Len(t, queue.Waiting, 3)
	assert.Equal(t, firstID, queue.Waiting[0].ReservationID)
	assert.Equal(t, 1, queue.Waiting[0].Position)
	assert.Equal(t, secondID, queue.Waiting[1].ReservationID)
	assert.Equal(t, 2, queue.Waiting[1].Position)
	assert.Equal(t, thirdID, queue.Waiting[2].ReservationID)
	assert.Equal(t, 3, queue.Waiting[2].Position)
	assert.Empty(t, queue.Holds)
}

func Test_ProjectReservationQueue_CancellationMovesEveryoneUp(t *testing.T) {
	// arrange
	titleID := uuid.New()
	now := time.Now()

	firstID := uuid.New().String()
	firstMemberID := uuid.New().String()
	secondID := uuid.New().String()

	history := core.DomainEvents{
		core.BuildReservationPlaced(firstID, firstMemberID, titleID.String(), now.Add(-10*time.Hour)),
		core.BuildReservationPlaced(secondID, uuid.New().String(), titleID.String(), now.Add(-8*time.Hour)),
		core.BuildReservationCancelled(firstID, firstMemberID, titleID.String(), now.Add(-2*time.Hour)),
	}

	// act
	queue := reservationqueue.ProjectReservationQueue(history, reservationqueue.BuildQuery(titleID))

	// assert
	assert.Len(t, queue.Waiting, 1)
	assert.Equal(t, secondID, queue.Waiting[0].ReservationID)
	assert.Equal(t, 1, queue.Waiting[0].Position)
}

func Test_ProjectReservationQueue_FulfilledReservationBecomesAHold(t *testing.T) {
	// arrange
	titleID := uuid.New()
	holderID := uuid.New().String()
	copyID := uuid.New().String()
	reservationID := uuid.New().String()
	now := time.Now()
	holdUntil := now.Add(70 * time.Hour)

	history := core.DomainEvents{
		givenCopyAdded(t, copyID, titleID.String(), now.Add(-20*time.Hour)),
		core.BuildReservationPlaced(reservationID, holderID, titleID.String(), now.Add(-10*time.Hour)),
		core.BuildReservationFulfilled(reservationID, holderID, titleID.String(), copyID, holdUntil, now.Add(-2*time.Hour)),
	}

	// act
	queue := reservationqueue.ProjectReservationQueue(history, reservationqueue.BuildQuery(titleID))

	// assert
	assert.Empty(t, queue.Waiting)
	assert.Len(t, queue.Holds, 1)
	assert.Equal(t, reservationID, queue.Holds[0].ReservationID)
	assert.Equal(t, holderID, queue.Holds[0].MemberID)
	assert.Equal(t, copyID, queue.Holds[0].CopyID)
	assert.True(t, core.ToOccurredAt(holdUntil).Equal(queue.Holds[0].HoldUntil))
	assert.Equal(t, 0, queue.AvailableCopies, "A held copy is not available")
}

func Test_ProjectReservationQueue_AvailableCopiesCount(t *testing.T) {
	// arrange
	titleID := uuid.New()
	borrowedCopyID := uuid.New().String()
	now := time.Now()

	history := core.DomainEvents{
		givenCopyAdded(t, uuid.New().String(), titleID.String(), now.Add(-20*time.Hour)),
		givenCopyAdded(t, borrowedCopyID, titleID.String(), now.Add(-20*time.Hour)),
		core.BuildLoanOpened(uuid.New().String(), uuid.New().String(), borrowedCopyID, titleID.String(), now.Add(100*time.Hour), now.Add(-5*time.Hour)),
	}

	// act
	queue := reservationqueue.ProjectReservationQueue(history, reservationqueue.BuildQuery(titleID))

	// assert
	assert.Equal(t, 1, queue.AvailableCopies)
	assert.Empty(t, queue.Waiting)
}

func givenCopyAdded(t *testing.T, copyID, titleID string, occurredAt time.Time) core.CopyAddedToCirculation {
	t.Helper()

	return core.BuildCopyAddedToCirculation(
		copyID, titleID, "978-0141439518", "Pride and Prejudice", "Jane Austen", occurredAt)
}
