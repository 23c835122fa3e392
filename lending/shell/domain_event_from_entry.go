package shell

import (
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/lending/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple journal entries to DomainEvents.
func DomainEventsFrom(entries eventlog.Entries) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0)

	for _, entry := range entries {
		domainEvent, err := DomainEventFrom(entry)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a journal entry to its corresponding DomainEvent.
func DomainEventFrom(entry eventlog.Entry) (core.DomainEvent, error) { //nolint:gocyclo
	switch entry.EventType {
	case core.MemberRegisteredEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.MemberRegistered))

	case core.MemberSuspendedEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.MemberSuspended))

	case core.MemberReinstatedEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.MemberReinstated))

	case core.CopyAddedToCirculationEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.CopyAddedToCirculation))

	case core.CopyRemovedFromCirculationEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.CopyRemovedFromCirculation))

	case core.CopyMarkedDamagedEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.CopyMarkedDamaged))

	case core.LoanOpenedEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.LoanOpened))

	case core.LoanRenewedEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.LoanRenewed))

	case core.LoanReturnedEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.LoanReturned))

	case core.LoanReportedLostEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.LoanReportedLost))

	case core.ReservationPlacedEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.ReservationPlaced))

	case core.ReservationCancelledEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.ReservationCancelled))

	case core.ReservationFulfilledEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.ReservationFulfilled))

	case core.ReservationExpiredEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.ReservationExpired))

	case core.FineIssuedEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.FineIssued))

	case core.FinePaidEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.FinePaid))

	case core.FineWaivedEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.FineWaived))

	case core.FineDeletedEventType:
		return unmarshalEvent(entry.PayloadJSON, new(core.FineDeleted))

	default:
		if strings.HasSuffix(entry.EventType, core.OperationDeclinedEventTypeSuffix) {
			return unmarshalOperationDeclined(entry)
		}
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalEvent[E core.DomainEvent](payloadJSON []byte, payload *E) (core.DomainEvent, error) {
	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}

func unmarshalOperationDeclined(entry eventlog.Entry) (core.DomainEvent, error) {
	payload := new(core.OperationDeclined)

	err := jsoniter.ConfigFastest.Unmarshal(entry.PayloadJSON, payload)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	// the entry's event type is authoritative for the dynamic type
	payload.DynamicEventType = entry.EventType

	return *payload, nil
}
