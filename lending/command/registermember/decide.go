package registermember

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonEmptyName         = "member name must not be empty"
	failureReasonExpiryNotInFuture = "membership expiry must be in the future"
)

// state represents the current state projected from the event history.
type state struct {
	memberIsRegistered bool
}

// Decide implements the business logic for registering a member.
//
// Business Rules:
//
//	GIVEN: A member with MemberID
//	WHEN: RegisterMember command is received
//	THEN: MemberRegistered event is generated
//	ERROR: "member name must not be empty" if the name is blank
//	ERROR: "membership expiry must be in the future" if expiry is not after registration
//	IDEMPOTENCY: If the member is already registered, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.MemberID.String())

	if s.memberIsRegistered {
		return core.IdempotentDecision()
	}

	var reasons []string
	if command.Name == "" {
		reasons = append(reasons, failureReasonEmptyName)
	}

	if !command.MembershipExpiresAt.After(command.OccurredAt) {
		reasons = append(reasons, failureReasonExpiryNotInFuture)
	}

	if len(reasons) > 0 {
		event := core.BuildOperationDeclined(commandType, command.MemberID.String(), reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(core.ErrValidation, reasons))
	}

	return core.SuccessDecision(
		core.BuildMemberRegistered(
			command.MemberID.String(),
			command.Name,
			command.MembershipExpiresAt,
			command.OccurredAt,
		),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, memberID string) state {
	s := state{}

	for _, event := range history {
		if e, ok := event.(core.MemberRegistered); ok && e.MemberID == memberID {
			s.memberIsRegistered = true
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
		).
		AndAnyPredicateOf(
			eventlog.P("MemberID", memberID.String()),
		).
		Finalize()
}
