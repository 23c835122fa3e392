package eventlog

import (
	"slices"
)

// Predicate matches a single top-level key/value pair inside an entry's
// payload. Engines translate it to their native containment check
// (jsonb @> on Postgres).
type Predicate struct {
	key string
	val string
}

// P is a shorthand constructor for a Predicate.
func P(key string, val string) Predicate {
	return Predicate{key: key, val: val}
}

func (p Predicate) Key() string { return p.key }
func (p Predicate) Val() string { return p.val }

// Filter selects the dynamic event stream an operation reads and appends to:
// entries whose event type is one of EventTypes (empty means any) and whose
// payload matches the predicates (any-of by default, all-of when
// AllPredicatesMustMatch is set).
//
// The same Filter used for the Query must be used for the conditional Append,
// otherwise the optimistic concurrency guard protects the wrong stream.
type Filter struct {
	eventTypes             []string
	predicates             []Predicate
	allPredicatesMustMatch bool
}

func (f Filter) EventTypes() []string    { return f.eventTypes }
func (f Filter) Predicates() []Predicate { return f.predicates }

func (f Filter) AllPredicatesMustMatch() bool { return f.allPredicatesMustMatch }

// IsEmpty reports whether the filter matches every entry.
func (f Filter) IsEmpty() bool {
	return len(f.eventTypes) == 0 && len(f.predicates) == 0
}

// MatchingAnyEvent is the empty filter: the whole journal as one stream.
func MatchingAnyEvent() Filter {
	return Filter{}
}

// FilterBuilder assembles a Filter. Inputs are sanitized: empty event types
// and empty/partial predicates are dropped, the rest sorted and deduplicated.
type FilterBuilder struct {
	filter Filter
}

// BuildFilter starts a new FilterBuilder; finish it with Finalize.
func BuildFilter() *FilterBuilder {
	return &FilterBuilder{}
}

// AnyEventTypeOf adds event types, any of which may match.
func (b *FilterBuilder) AnyEventTypeOf(eventTypes ...string) *FilterBuilder {
	merged := append(b.filter.eventTypes, eventTypes...) //nolint:gocritic // intentionally merging into a new slice

	merged = slices.DeleteFunc(merged, func(e string) bool { return e == "" })
	slices.Sort(merged)
	merged = slices.Compact(merged)

	b.filter.eventTypes = slices.Clip(merged)

	return b
}

// AndAnyPredicateOf adds predicates, any of which may match.
func (b *FilterBuilder) AndAnyPredicateOf(predicates ...Predicate) *FilterBuilder {
	b.filter.predicates = b.mergePredicates(predicates)
	b.filter.allPredicatesMustMatch = false

	return b
}

// AndAllPredicatesOf adds predicates which must all match.
func (b *FilterBuilder) AndAllPredicatesOf(predicates ...Predicate) *FilterBuilder {
	b.filter.predicates = b.mergePredicates(predicates)
	b.filter.allPredicatesMustMatch = true

	return b
}

func (b *FilterBuilder) mergePredicates(predicates []Predicate) []Predicate {
	merged := append(b.filter.predicates, predicates...) //nolint:gocritic // intentionally merging into a new slice

	merged = slices.DeleteFunc(merged, func(p Predicate) bool { return p.key == "" || p.val == "" })

	slices.SortFunc(merged, func(a, b Predicate) int {
		if a.key != b.key {
			if a.key > b.key {
				return 1
			}
			return -1
		}
		if a.val != b.val {
			if a.val > b.val {
				return 1
			}
			return -1
		}
		return 0
	})

	merged = slices.Compact(merged)

	return slices.Clip(merged)
}

// Finalize returns the assembled Filter.
func (b *FilterBuilder) Finalize() Filter {
	return b.filter
}
