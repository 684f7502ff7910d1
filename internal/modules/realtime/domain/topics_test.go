package domain

import (
	"testing"
	"time"

	reservations "mesaYaSync/internal/modules/reservations/domain"
	syncdomain "mesaYaSync/internal/modules/sync/domain"
)

func TestConsoleTopics(t *testing.T) {
	topics := ConsoleTopics()

	want := map[string]bool{
		"reservations.created":   false,
		"reservations.updated":   false,
		"reservations.cancelled": false,
		"reservations.confirmed": false,
		"reservations.completed": false,
		"reservations.snapshot":  false,
		"sync.state":             false,
	}
	if len(topics) != len(want) {
		t.Fatalf("expected %d topics, got %v", len(want), topics)
	}
	for _, topic := range topics {
		seen, ok := want[topic]
		if !ok {
			t.Errorf("unexpected topic %q", topic)
			continue
		}
		if seen {
			t.Errorf("duplicate topic %q", topic)
		}
		want[topic] = true
	}
}

func TestBuildEventMessage(t *testing.T) {
	at := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	event := &reservations.Event{
		Type:        reservations.EventReservationConfirmed,
		Reservation: reservations.Reservation{ID: "r-1", Status: reservations.ReservationStatusConfirmed},
	}

	msg := BuildEventMessage(event, at)
	if msg == nil {
		t.Fatal("expected message")
	}
	if msg.Topic != "reservations.confirmed" || msg.Action != "confirmed" {
		t.Errorf("topic/action: %s %s", msg.Topic, msg.Action)
	}
	if msg.ResourceID != "r-1" {
		t.Errorf("resourceId: %s", msg.ResourceID)
	}
	if msg.Timestamp.Location() != time.UTC {
		t.Errorf("timestamp must be UTC, got %s", msg.Timestamp.Location())
	}
}

func TestBuildEventMessageRejectsNonMutations(t *testing.T) {
	if msg := BuildEventMessage(nil, time.Now()); msg != nil {
		t.Fatal("nil event must yield nil message")
	}
	event := &reservations.Event{Type: reservations.EventConnected}
	if msg := BuildEventMessage(event, time.Now()); msg != nil {
		t.Fatal("non-mutation events must yield nil message")
	}
}

func TestBuildSnapshotMessage(t *testing.T) {
	items := []reservations.Reservation{{ID: "r-1"}, {ID: "r-2"}}
	msg := BuildSnapshotMessage(items, time.Now())

	if msg.Topic != "reservations.snapshot" {
		t.Errorf("topic: %s", msg.Topic)
	}
	if msg.Metadata["count"] != "2" {
		t.Errorf("count metadata: %v", msg.Metadata)
	}
}

func TestBuildSyncStateMessage(t *testing.T) {
	msg := BuildSyncStateMessage(syncdomain.StateConnected, time.Now())
	if msg.Topic != TopicSyncState {
		t.Errorf("topic: %s", msg.Topic)
	}
	data, ok := msg.Data.(map[string]any)
	if !ok {
		t.Fatalf("data type: %T", msg.Data)
	}
	if data["state"] != "connected" || data["connected"] != true {
		t.Errorf("data: %v", data)
	}

	msg = BuildSyncStateMessage(syncdomain.StateConnecting, time.Now())
	data = msg.Data.(map[string]any)
	if data["connected"] != false {
		t.Errorf("connecting must report connected=false, got %v", data)
	}
}
