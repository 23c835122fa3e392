package checkeligibility

import (
	"context"

	"github.com/shelfwise/circulation-go/lending/core"
	"github.com/shelfwise/circulation-go/lending/shell"
)

// QueryHandler orchestrates the query workflow: Query -> Unmarshal -> Project.
type QueryHandler struct {
	eventLog shell.EventLog
	policy   core.Policy
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithPolicy overrides the default circulation policy.
func WithPolicy(policy core.Policy) Option {
	return func(h *QueryHandler) {
		h.policy = policy
	}
}

// NewQueryHandler creates a new QueryHandler with optional configuration.
func NewQueryHandler(eventLog shell.EventLog, opts ...Option) QueryHandler {
	handler := QueryHandler{
		eventLog: eventLog,
		policy:   core.DefaultPolicy(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the query and returns the derived eligibility report.
func (h QueryHandler) Handle(ctx context.Context, query Query) (EligibilityReport, error) {
	entries, _, err := h.eventLog.Query(ctx, BuildEventFilter(query.MemberID))
	if err != nil {
		return EligibilityReport{}, err
	}

	history, err := shell.DomainEventsFrom(entries)
	if err != nil {
		return EligibilityReport{}, err
	}

	return ProjectEligibility(history, query, h.policy), nil
}
