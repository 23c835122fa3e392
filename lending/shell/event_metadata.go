package shell

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/shelfwise/circulation-go/eventlog"
)

// ErrMappingToEventMetadataFailed is returned when the metadata of a journal
// entry cannot be decoded.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

// EventMetadata carries the message tracking identifiers journaled alongside
// every domain event. CausationID points at the command or event that
// triggered this one, CorrelationID groups everything belonging to the same
// workflow.
type EventMetadata struct {
	MessageID     string
	CausationID   string
	CorrelationID string
}

// BuildEventMetadata creates EventMetadata from UUID values.
func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// EventMetadataFrom decodes the tracking identifiers of a journal entry.
func EventMetadataFrom(entry eventlog.Entry) (EventMetadata, error) {
	var metadata EventMetadata
	if err := jsoniter.ConfigFastest.Unmarshal(entry.MetadataJSON, &metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return metadata, nil
}
