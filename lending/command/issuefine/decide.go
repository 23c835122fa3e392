package issuefine

import (
	"github.com/google/uuid"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

const (
	failureReasonMemberNotRegistered = "member is not registered"
	failureReasonNonPositiveAmount   = "fine amount must be positive"
	failureReasonUnknownFineType     = "unknown fine type"
)

// state represents the current state projected from the event history.
type state struct {
	fineExists         bool
	memberIsRegistered bool
}

// Decide implements the business logic for issuing a fine manually.
//
// Business Rules:
//
//	GIVEN: A member with MemberID
//	WHEN: IssueFine command is received
//	THEN: FineIssued event is generated
//	ERROR: "member is not registered" if the member does not exist
//	ERROR: "fine amount must be positive" for zero or negative amounts
//	ERROR: "unknown fine type" for types outside the known classifiers
//	IDEMPOTENCY: If a fine with this FineID already exists, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.FineID.String(), command.MemberID.String())

	if s.fineExists {
		return core.IdempotentDecision()
	}

	var reasons []string
	kind := core.ErrValidation

	if !s.memberIsRegistered {
		reasons = append(reasons, failureReasonMemberNotRegistered)
		kind = core.ErrNotFound
	}

	if !command.Amount.IsPositive() {
		reasons = append(reasons, failureReasonNonPositiveAmount)
	}

	if !validFineType(command.FineType) {
		reasons = append(reasons, failureReasonUnknownFineType)
	}

	if len(reasons) > 0 {
		event := core.BuildOperationDeclined(commandType, command.FineID.String(), reasons, command.OccurredAt)
		return core.ErrorDecision(event, core.DeclinedError(kind, reasons))
	}

	return core.SuccessDecision(
		core.BuildFineIssued(
			command.FineID.String(),
			command.MemberID.String(),
			command.LoanID,
			command.FineType,
			command.Amount,
			command.Description,
			command.OccurredAt,
		),
	)
}

func validFineType(fineType string) bool {
	switch fineType {
	case core.FineTypeOverdue, core.FineTypeLost, core.FineTypeDamaged, core.FineTypeOther:
		return true
	default:
		return false
	}
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, fineID string, memberID string) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.FineIssued:
			if e.FineID == fineID {
				s.fineExists = true
			}

		case core.MemberRegistered:
			if e.MemberID == memberID {
				s.memberIsRegistered = true
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying the fine and the member's
// registration events.
func BuildEventFilter(fineID uuid.UUID, memberID uuid.UUID) eventlog.Filter {
	return eventlog.BuildFilter().
		AnyEventTypeOf(
			core.FineIssuedEventType,
			core.MemberRegisteredEventType,
		).
		AndAnyPredicateOf(
			eventlog.P("FineID", fineID.String()),
			eventlog.P("MemberID", memberID.String()),
		).
		Finalize()
}
