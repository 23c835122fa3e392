package eventlog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation-go/eventlog"
)

func Test_NewEntry_Valid(t *testing.T) {
	occurredAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"LoanID": "loan-123"}`)
	metadata := []byte(`{"MessageID": "msg-456"}`)

	entry, err := eventlog.NewEntry("LoanOpened", occurredAt, payload, metadata)

	assert.NoError(t, err)
	assert.Equal(t, "LoanOpened", entry.EventType)
	assert.Equal(t, occurredAt, entry.OccurredAt)
	assert.Equal(t, payload, entry.PayloadJSON)
	assert.Equal(t, metadata, entry.MetadataJSON)
}

func Test_NewEntry_EmptyEventType(t *testing.T) {
	_, err := eventlog.NewEntry("", time.Now(), []byte(`{}`), []byte(`{}`))

	assert.ErrorIs(t, err, eventlog.ErrEmptyEventType)
}

func Test_NewEntry_InvalidPayloadJSON(t *testing.T) {
	_, err := eventlog.NewEntry("LoanOpened", time.Now(), []byte(`{not json`), []byte(`{}`))

	assert.ErrorIs(t, err, eventlog.ErrInvalidPayloadJSON)
}

func Test_NewEntry_InvalidMetadataJSON(t *testing.T) {
	_, err := eventlog.NewEntry("LoanOpened", time.Now(), []byte(`{}`), []byte(`{not json`))

	assert.ErrorIs(t, err, eventlog.ErrInvalidMetadataJSON)
}

func Test_NewEntryWithEmptyMetadata(t *testing.T) {
	occurredAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	entry, err := eventlog.NewEntryWithEmptyMetadata("LoanReturned", occurredAt, []byte(`{"LoanID": "loan-123"}`))

	assert.NoError(t, err)
	assert.Equal(t, "LoanReturned", entry.EventType)
	assert.JSONEq(t, `{}`, string(entry.MetadataJSON))
}
