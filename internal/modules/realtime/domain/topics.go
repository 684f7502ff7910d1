package domain

import (
	"strconv"
	"time"

	reservations "mesaYaSync/internal/modules/reservations/domain"
	syncdomain "mesaYaSync/internal/modules/sync/domain"
)

const (
	ReservationsEntity = "reservations"
	SystemEntity       = "system"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionSnapshot  = "snapshot"
	ActionState     = "state"

	TopicSystemConnected = SystemEntity + "." + ActionConnected
	TopicSystemPong      = SystemEntity + "." + ActionPong
	TopicSyncState       = "sync." + ActionState
)

// ReservationTopic returns the canonical topic for a mutation verb, e.g.
// "reservations.created".
func ReservationTopic(action string) string {
	return ReservationsEntity + "." + action
}

// ConsoleTopics lists everything a console client is subscribed to on attach.
func ConsoleTopics() []string {
	topics := make([]string, 0, len(reservations.ReservationEventTypes)+2)
	for _, eventType := range reservations.ReservationEventTypes {
		topics = append(topics, ReservationTopic(eventType.Action()))
	}
	topics = append(topics, ReservationTopic(ActionSnapshot), TopicSyncState)
	return topics
}

// BuildEventMessage wraps an applied feed event for fan-out.
func BuildEventMessage(event *reservations.Event, at time.Time) *Message {
	if event == nil || !event.Type.IsReservationMutation() {
		return nil
	}
	action := event.Type.Action()
	return &Message{
		Topic:      ReservationTopic(action),
		Entity:     ReservationsEntity,
		Action:     action,
		ResourceID: event.Reservation.ID,
		Data:       event.Reservation,
		Timestamp:  at.UTC(),
	}
}

// BuildSnapshotMessage wraps the full mirror contents, sent after a refresh.
func BuildSnapshotMessage(items []reservations.Reservation, at time.Time) *Message {
	return &Message{
		Topic:     ReservationTopic(ActionSnapshot),
		Entity:    ReservationsEntity,
		Action:    ActionSnapshot,
		Metadata:  Metadata{"count": strconv.Itoa(len(items))},
		Data:      items,
		Timestamp: at.UTC(),
	}
}

// BuildSyncStateMessage reflects the upstream connection state as a passive
// indicator for the console.
func BuildSyncStateMessage(state syncdomain.ConnectionState, at time.Time) *Message {
	return &Message{
		Topic:     TopicSyncState,
		Entity:    "sync",
		Action:    ActionState,
		Data:      map[string]any{"state": state.String(), "connected": state == syncdomain.StateConnected},
		Timestamp: at.UTC(),
	}
}
