package domain

import "time"

// Metadata carries string routing hints attached to a message.
type Metadata map[string]string

// Message is the envelope broadcast to console websocket clients.
type Message struct {
	Topic      string    `json:"topic"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ResourceID string    `json:"resourceId,omitempty"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	Data       any       `json:"data,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
