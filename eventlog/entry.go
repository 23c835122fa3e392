package eventlog

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrInvalidPayloadJSON  = errors.New("payload json is not valid")
	ErrInvalidMetadataJSON = errors.New("metadata json is not valid")
	ErrEmptyEventType      = errors.New("empty event type supplied")

	// ErrConcurrencyConflict is reported by engines when a conditional append
	// found that the filtered stream advanced past the expected sequence.
	ErrConcurrencyConflict = errors.New("concurrency conflict, no rows were affected")

	ErrEmptyTableName        = errors.New("empty table name supplied")
	ErrNilDatabaseConnection = errors.New("nil database connection supplied")

	ErrBuildingQueryFailed       = errors.New("building query failed")
	ErrQueryingEntriesFailed     = errors.New("querying journal entries failed")
	ErrAppendingEntriesFailed    = errors.New("appending journal entries failed")
	ErrScanningDBRowFailed       = errors.New("scanning database row failed")
	ErrBuildingEntryFailed       = errors.New("building journal entry failed")
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected count failed")
)

// MaxSequence is the maximum sequence number of a filtered dynamic event
// stream at the time it was queried.
type MaxSequence = uint

// Entries is an alias type for a slice of Entry.
type Entries = []Entry

// Entry is the DTO an engine appends and queries back. It is built on scalars
// so the journal stays agnostic of how domain events are implemented.
//
// Construct it with NewEntry or NewEntryWithEmptyMetadata only.
type Entry struct {
	EventType    string
	OccurredAt   time.Time
	PayloadJSON  []byte
	MetadataJSON []byte
}

// NewEntry builds an Entry from scalar input, validating both JSON documents.
func NewEntry(eventType string, occurredAt time.Time, payloadJSON []byte, metadataJSON []byte) (Entry, error) {
	if eventType == "" {
		return Entry{}, ErrEmptyEventType
	}

	if !json.Valid(payloadJSON) {
		return Entry{}, ErrInvalidPayloadJSON
	}

	if !json.Valid(metadataJSON) {
		return Entry{}, ErrInvalidMetadataJSON
	}

	return Entry{
		EventType:    eventType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// NewEntryWithEmptyMetadata builds an Entry with valid empty JSON metadata.
func NewEntryWithEmptyMetadata(eventType string, occurredAt time.Time, payloadJSON []byte) (Entry, error) {
	return NewEntry(eventType, occurredAt, payloadJSON, []byte("{}"))
}
