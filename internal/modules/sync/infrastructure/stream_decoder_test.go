package infrastructure

import (
	"errors"
	"io"
	"strings"
	"testing"
)

type capturedEvent struct {
	name string
	data string
}

func collectEvents(t *testing.T, body string) []capturedEvent {
	t.Helper()
	var events []capturedEvent
	err := readStream(strings.NewReader(body), func(name string, data []byte) {
		events = append(events, capturedEvent{name: name, data: string(data)})
	})
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	return events
}

func TestReadStreamNamedEvents(t *testing.T) {
	body := "event: reservation_created\ndata: {\"id\":\"r-1\"}\n\n" +
		"event: reservation_cancelled\ndata: {\"id\":\"r-2\"}\n\n"

	events := collectEvents(t, body)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].name != "reservation_created" || events[0].data != `{"id":"r-1"}` {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].name != "reservation_cancelled" || events[1].data != `{"id":"r-2"}` {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
}

func TestReadStreamMultiLineData(t *testing.T) {
	body := "event: connected\ndata: {\"hello\":\ndata: true}\n\n"

	events := collectEvents(t, body)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].data != "{\"hello\":\ntrue}" {
		t.Fatalf("data lines must join with newline, got %q", events[0].data)
	}
}

func TestReadStreamSkipsCommentsAndUnknownFields(t *testing.T) {
	body := ": keep-alive\nid: 42\nretry: 5000\nevent: ping\ndata: {}\n\n: another comment\n\n"

	events := collectEvents(t, body)
	if len(events) != 1 {
		t.Fatalf("comments and id/retry fields must not produce events, got %d", len(events))
	}
	if events[0].name != "ping" || events[0].data != "{}" {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}

func TestReadStreamCRLF(t *testing.T) {
	body := "event: reservation_updated\r\ndata: {\"id\":\"r-3\"}\r\n\r\n"

	events := collectEvents(t, body)
	if len(events) != 1 || events[0].name != "reservation_updated" || events[0].data != `{"id":"r-3"}` {
		t.Fatalf("CRLF framing must parse, got %+v", events)
	}
}

func TestReadStreamDataWithoutEventName(t *testing.T) {
	events := collectEvents(t, "data: {\"type\":\"reservation_created\",\"id\":\"r-9\"}\n\n")
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].name != "" {
		t.Fatalf("name should be empty when the stream omits it, got %q", events[0].name)
	}
}

func TestReadStreamDropsPartialTrailingLine(t *testing.T) {
	events := collectEvents(t, "event: reservation_created\ndata: {\"id\":")
	if len(events) != 0 {
		t.Fatalf("incomplete trailing event must be dropped, got %+v", events)
	}
}
