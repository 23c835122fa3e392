package core

import (
	"strings"
	"time"
)

// OperationDeclinedEventTypeSuffix is appended to a command type to form the
// dynamic event type of a declined operation.
const OperationDeclinedEventTypeSuffix = "Declined"

// OperationDeclined represents a command that was rejected by a business
// rule. The event type is derived from the command, e.g. "CheckOutCopyDeclined".
type OperationDeclined struct {
	SubjectID        string
	Reasons          string
	OccurredAt       OccurredAtTS
	DynamicEventType string
}

// BuildOperationDeclined creates a new OperationDeclined event for the given
// command type and the entity the command targeted.
func BuildOperationDeclined(
	commandType string,
	subjectID string,
	reasons []string,
	occurredAt time.Time,
) OperationDeclined {

	return OperationDeclined{
		SubjectID:        subjectID,
		Reasons:          strings.Join(reasons, "; "),
		OccurredAt:       ToOccurredAt(occurredAt),
		DynamicEventType: commandType + OperationDeclinedEventTypeSuffix,
	}
}

// EventType returns the dynamic event type identifier.
func (e OperationDeclined) EventType() string {
	return e.DynamicEventType
}

// HasOccurredAt returns when this event occurred.
func (e OperationDeclined) HasOccurredAt() time.Time {
	return e.OccurredAt
}
