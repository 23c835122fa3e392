package eventlog

import "context"

// ConsistencyLevel defines the consistency requirements for journal reads.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database so a command
	// handler sees its own writes. This is the safe default for the
	// read-check-append workflow.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica, trading freshness for
	// reduced primary load. Suitable for periodic scheduler queries.
	EventualConsistency
)

// contextKey is a private type to prevent context key collisions.
type contextKey string

const consistencyLevelKey contextKey = "eventlog.consistency_level"

// WithStrongConsistency marks the context so journal reads use the primary.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency marks the context so journal reads may use a replica.
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context,
// defaulting to StrongConsistency.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(consistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation for logging and debugging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
