package shell

import (
	"encoding/json"
	"errors"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

// ErrMappingToEntryFailedForDomainEvent is returned when domain event serialization fails.
var ErrMappingToEntryFailedForDomainEvent = errors.New("mapping to journal entry failed for domain event")

// ErrMappingToEntryFailedForMetadata is returned when metadata serialization fails.
var ErrMappingToEntryFailedForMetadata = errors.New("mapping to journal entry failed for metadata")

// EntryFrom converts a DomainEvent and EventMetadata to a journal entry.
func EntryFrom(event core.DomainEvent, metadata EventMetadata) (eventlog.Entry, error) {
	payloadJSON, err := json.Marshal(event)
	if err != nil {
		return eventlog.Entry{}, errors.Join(ErrMappingToEntryFailedForDomainEvent, err)
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return eventlog.Entry{}, errors.Join(ErrMappingToEntryFailedForMetadata, err)
	}

	entry, err := eventlog.NewEntry(
		event.EventType(),
		event.HasOccurredAt(),
		payloadJSON,
		metadataJSON,
	)
	if err != nil {
		return eventlog.Entry{}, errors.Join(ErrMappingToEntryFailedForDomainEvent, err)
	}

	return entry, nil
}

// EntryWithEmptyMetadataFrom converts a DomainEvent to a journal entry with
// empty metadata.
func EntryWithEmptyMetadataFrom(event core.DomainEvent) (eventlog.Entry, error) {
	payloadJSON, err := json.Marshal(event)
	if err != nil {
		return eventlog.Entry{}, errors.Join(ErrMappingToEntryFailedForDomainEvent, err)
	}

	entry, err := eventlog.NewEntryWithEmptyMetadata(
		event.EventType(),
		event.HasOccurredAt(),
		payloadJSON,
	)
	if err != nil {
		return eventlog.Entry{}, errors.Join(ErrMappingToEntryFailedForDomainEvent, err)
	}

	return entry, nil
}

// EntriesFrom converts a batch of domain events sharing the same metadata to
// journal entries, preserving order.
func EntriesFrom(events core.DomainEvents, metadata EventMetadata) (eventlog.Entries, error) {
	entries := make(eventlog.Entries, 0, len(events))
	for _, event := range events {
		entry, err := EntryFrom(event, metadata)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
