// Package memlog provides an in-memory shell.EventLog for tests. It honors
// filters the same way the Postgres engine does, including the conditional
// append guard, so handler tests can exercise concurrency conflicts without
// a database.
package memlog

import (
	"context"
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/shelfwise/circulation-go/eventlog"
)

var jsonUnmarshal = jsoniter.ConfigFastest

type storedEntry struct {
	sequence uint
	entry    eventlog.Entry
	payload  map[string]any
}

// EventLog is an in-memory journal double. The zero value is not usable;
// construct it with New.
type EventLog struct {
	mu      sync.Mutex
	entries []storedEntry
	nextSeq uint
}

// New creates an empty in-memory event log.
func New() *EventLog {
	return &EventLog{nextSeq: 1}
}

// Query returns all entries matching the filter in append order, together
// with the highest sequence number among them.
func (l *EventLog) Query(_ context.Context, filter eventlog.Filter) (
	eventlog.Entries,
	eventlog.MaxSequence,
	error,
) {
	l.mu.Lock()
	defer l.mu.Unlock()

	matching, maxSeq := l.matchingEntries(filter)

	return matching, maxSeq, nil
}

// Append stores the supplied entries if no other entry matching the filter
// was appended after expectedMaxSequence, mirroring the engine's conditional
// append. On a stale expectation it reports eventlog.ErrConcurrencyConflict.
func (l *EventLog) Append(
	_ context.Context,
	filter eventlog.Filter,
	expectedMaxSequence eventlog.MaxSequence,
	entry eventlog.Entry,
	additionalEntries ...eventlog.Entry,
) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, maxSeq := l.matchingEntries(filter)
	if maxSeq != expectedMaxSequence {
		return eventlog.ErrConcurrencyConflict
	}

	for _, e := range append([]eventlog.Entry{entry}, additionalEntries...) {
		payload := make(map[string]any)
		if err := jsonUnmarshal.Unmarshal(e.PayloadJSON, &payload); err != nil {
			return err
		}

		l.entries = append(l.entries, storedEntry{
			sequence: l.nextSeq,
			entry:    e,
			payload:  payload,
		})
		l.nextSeq++
	}

	return nil
}

// AppendedCount reports how many entries the log holds.
func (l *EventLog) AppendedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// AllEntries returns a copy of every stored entry in append order.
func (l *EventLog) AllEntries() eventlog.Entries {
	l.mu.Lock()
	defer l.mu.Unlock()

	all := make(eventlog.Entries, 0, len(l.entries))
	for _, se := range l.entries {
		all = append(all, se.entry)
	}

	return all
}

func (l *EventLog) matchingEntries(filter eventlog.Filter) (eventlog.Entries, uint) {
	var matching eventlog.Entries
	var maxSeq uint

	for _, se := range l.entries {
		if !matches(filter, se) {
			continue
		}

		matching = append(matching, se.entry)
		if se.sequence > maxSeq {
			maxSeq = se.sequence
		}
	}

	return matching, maxSeq
}

func matches(filter eventlog.Filter, se storedEntry) bool {
	if filter.IsEmpty() {
		return true
	}

	if types := filter.EventTypes(); len(types) > 0 {
		found := false
		for _, et := range types {
			if se.entry.EventType == et {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	predicates := filter.Predicates()
	if len(predicates) == 0 {
		return true
	}

	if filter.AllPredicatesMustMatch() {
		for _, p := range predicates {
			if !payloadHas(se.payload, p) {
				return false
			}
		}
		return true
	}

	for _, p := range predicates {
		if payloadHas(se.payload, p) {
			return true
		}
	}

	return false
}

func payloadHas(payload map[string]any, p eventlog.Predicate) bool {
	val, ok := payload[p.Key()]
	if !ok {
		return false
	}

	str, isString := val.(string)
	if isString {
		return str == p.Val()
	}

	return fmt.Sprint(val) == p.Val()
}
