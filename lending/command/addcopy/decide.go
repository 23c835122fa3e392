package addcopy

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonEmptyTitleName = "title name must not be empty"
	failureReasonCopyWasRemoved = "copy was previously removed from circulation"
)

// state represents the current state projected from the event history.
type state struct {
	copyIsInCirculation bool
	copyWasRemoved      bool
}

// Decide implements the business logic for adding a copy to circulation.
//
// Business Rules:
//
//	GIVEN: A copy with CopyID belonging to title with TitleID
//	WHEN: AddCopy command is received
//	THEN: CopyAddedToCirculation event is generated
//	ERROR: "title name must not be empty" if no title name is provided
//	ERROR: "copy was previously removed from circulation" if the copy was withdrawn
//	IDEMPOTENCY: If the copy is already in circulation, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.CopyID.String())

	if s.copyIsInCirculation {
		return core.IdempotentDecision()
	}

	var reasons []string
	if command.TitleName == "" {
		reasons = append(reasons, failureReasonEmptyTitleName)
	}

	if s.copyWasRemoved {
		reasons = append(reasons, failureReasonCopyWasRemoved)
	}

	if len(reasons) > 0 {
		event := core.BuildOperationDeclined(commandType, command.CopyID.String(), reasons, command.OccurredAt)

		kind := core.ErrValidation
		if s.copyWasRemoved {
			kind = core.ErrInvalidStateTransition
		}

		return core.ErrorDecision(event, core.DeclinedError(kind, reasons))
	}

	return core.SuccessDecision(
		core.BuildCopyAddedToCirculation(
			command.CopyID.String(),
			command.TitleID.String(),
			command.ISBN,
			command.TitleName,
			command.Authors,
			command.OccurredAt,
		),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, copyID string) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.CopyAddedToCirculation:
			if e.CopyID == copyID {
				s.copyIsInCirculation = true
			}

		case core.CopyRemovedFromCirculation:
			if e.CopyID == copyID {
				s.copyIsInCirculation = false
				s.copyWasRemoved = true
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events relevant for
// this feature.
func BuildEventFilter(copyID uuid.UUID) eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.CopyAddedToCirculationEventType,
			core.CopyRemovedFromCirculationEventType,
		).
		AndAnyPredicateOf(
			eventlog.P("CopyID", copyID.String()),
		).
		Finalize()
}
