package infrastructure

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mesaYaSync/internal/modules/realtime/domain"
)

// Command is the small control protocol console clients may send upstream.
type Command struct {
	Action string `json:"action"`
	Topic  string `json:"topic,omitempty"`
}

// Client is one console websocket connection with a buffered outbound queue.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	userID     string
	sessionID  string
	subscribed map[string]struct{}
	closeOnce  sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, sessionID string, buf int) *Client {
	if buf <= 0 {
		buf = 16
	}
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, buf),
		userID:     strings.TrimSpace(userID),
		sessionID:  strings.TrimSpace(sessionID),
		subscribed: make(map[string]struct{}),
	}
}

func (c *Client) key() string {
	return c.userID + ":" + c.sessionID
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})
}

// SendMessage queues one message for the client, detaching it when the buffer
// is full rather than blocking the caller.
func (c *Client) SendMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	select {
	case c.send <- data:
	default:
		slog.Warn("websocket send buffer full", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
		go c.hub.detachClient(c)
	}
}

func (c *Client) WritePump() {
	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.Any("error", err))
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				slog.Warn("websocket ping error", slog.Any("error", err))
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(1 << 16)
	_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	defer c.hub.detachClient(c)
	for {
		var cmd Command
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.Any("error", err))
			}
			return
		}
		c.processCommand(cmd)
	}
}

func (c *Client) processCommand(cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	switch strings.ToLower(strings.TrimSpace(cmd.Action)) {
	case "subscribe":
		if topic != "" {
			c.hub.subscribe(c, topic)
		}
	case "unsubscribe":
		if topic != "" {
			c.hub.unsubscribe(c, topic)
		}
	case "ping":
		c.SendMessage(&domain.Message{
			Topic:     domain.TopicSystemPong,
			Entity:    domain.SystemEntity,
			Action:    domain.ActionPong,
			Timestamp: time.Now().UTC(),
		})
	default:
		slog.Debug("websocket unknown command", slog.String("action", cmd.Action))
	}
}
