package reinstatemember

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonMemberNotRegistered = "member is not registered"
)

// state represents the current state projected from the event history.
type state struct {
	memberIsRegistered bool
	memberIsSuspended  bool
}

// Decide implements the business logic for reinstating a member.
//
// Business Rules:
//
//	GIVEN: A member with MemberID
//	WHEN: ReinstateMember command is received
//	THEN: MemberReinstated event is generated
//	ERROR: "member is not registered" if the member does not exist
//	IDEMPOTENCY: If the member is not suspended, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.MemberID.String())

	if !s.memberIsRegistered {
		reasons := []string{failureReasonMemberNotRegistered}
		event := core.BuildOperationDeclined(commandType, command.MemberID.String(), reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrNotFound, reasons))
	}

	if !s.memberIsSuspended {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildMemberReinstated(command.MemberID.String(), command.OccurredAt),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, memberID string) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			if e.MemberID == memberID {
				s.memberIsRegistered = true
			}

		case core.MemberSuspended:
			if e.MemberID == memberID {
				s.memberIsSuspended = true
			}

		case core.MemberReinstated:
			if e.MemberID == memberID {
				s.memberIsSuspended = false
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events relevant for
// this feature.
func BuildEventFilter(memberID uuid.UUID) eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.MemberSuspendedEventType,
			core.MemberReinstatedEventType,
		).
		AndAnyPredicateOf(
			eventlog.P("MemberID", memberID.String()),
		).
		Finalize()
}
