package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"mesaYaSync/internal/shared/normalization"
)

// EventType names the stream events emitted by the backend feed.
type EventType string

const (
	EventConnected            EventType = "connected"
	EventReservationCreated   EventType = "reservation_created"
	EventReservationUpdated   EventType = "reservation_updated"
	EventReservationCancelled EventType = "reservation_cancelled"
	EventReservationConfirmed EventType = "reservation_confirmed"
	EventReservationCompleted EventType = "reservation_completed"
)

// ReservationEventTypes lists the mutation events the sync client subscribes to.
var ReservationEventTypes = []EventType{
	EventReservationCreated,
	EventReservationUpdated,
	EventReservationCancelled,
	EventReservationConfirmed,
	EventReservationCompleted,
}

// IsReservationMutation reports whether the event carries a reservation snapshot.
func (t EventType) IsReservationMutation() bool {
	return strings.HasPrefix(string(t), "reservation_")
}

// Action returns the mutation verb without the entity prefix, e.g. "created".
func (t EventType) Action() string {
	return strings.TrimPrefix(string(t), "reservation_")
}

var (
	ErrMalformedEvent      = errors.New("malformed event payload")
	ErrEventMissingSubject = errors.New("event missing reservation id")
)

// Event is one message received from the feed. Reservation is a partial
// projection: some event types omit phone, notes and createdAt, so it must be
// merged with the local record rather than treated as a full replacement.
type Event struct {
	Type        EventType
	Reservation Reservation
	Timestamp   time.Time
}

// DecodeEvent parses a feed payload into an Event. name is the transport-level
// event name (SSE "event:" field, or the Kafka topic suffix); when it is empty
// the payload's own "type" field is used. The payload may be either an envelope
// {type, reservation, timestamp} or a bare reservation object.
func DecodeEvent(name string, payload []byte) (*Event, error) {
	var container map[string]any
	if err := json.Unmarshal(payload, &container); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	eventType := EventType(strings.TrimSpace(name))
	if eventType == "" {
		eventType = EventType(normalization.AsString(container["type"]))
	}
	if eventType == "" {
		return nil, fmt.Errorf("%w: missing event type", ErrMalformedEvent)
	}

	event := &Event{Type: eventType, Timestamp: normalization.AsTime(container["timestamp"])}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if !eventType.IsReservationMutation() {
		return event, nil
	}

	snapshot := container
	if nested, ok := container["reservation"].(map[string]any); ok {
		snapshot = nested
	}
	reservation, ok := NormalizeReservation(snapshot)
	if !ok {
		return nil, ErrEventMissingSubject
	}
	event.Reservation = reservation
	return event, nil
}
