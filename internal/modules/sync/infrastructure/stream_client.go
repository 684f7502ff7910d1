package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	reservations "mesaYaSync/internal/modules/reservations/domain"
	syncdomain "mesaYaSync/internal/modules/sync/domain"
	"mesaYaSync/internal/shared/auth"
)

// EventSink receives every decoded reservation event in arrival order.
type EventSink func(ctx context.Context, event *reservations.Event)

// StateListener observes connection state changes. Invoked outside the client
// lock; implementations may call back into the client.
type StateListener func(state syncdomain.ConnectionState)

// StreamConfig configures the upstream event feed connection.
type StreamConfig struct {
	BaseURL string
	Path    string
	Backoff syncdomain.Backoff
}

// StreamClient maintains the server-sent-events connection that feeds the
// mirror. Transport errors are absorbed: the client reconnects with
// exponential backoff and only surfaces state notifications. A missing
// credential makes Connect a logged no-op.
type StreamClient struct {
	cfg     StreamConfig
	httpc   *http.Client
	tokens  auth.TokenSource
	sink    EventSink
	onState StateListener

	mu         sync.Mutex
	state      syncdomain.ConnectionState
	generation int
	cancel     context.CancelFunc
	retryTimer *time.Timer
	retries    int
	suspended  bool
	parent     context.Context
}

func NewStreamClient(cfg StreamConfig, httpc *http.Client, tokens auth.TokenSource, sink EventSink, onState StateListener) *StreamClient {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if cfg.Path == "" {
		cfg.Path = "/api/v1/reservations/stream"
	}
	return &StreamClient{cfg: cfg, httpc: httpc, tokens: tokens, sink: sink, onState: onState}
}

func (c *StreamClient) State() syncdomain.ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *StreamClient) IsConnected() bool {
	return c.State() == syncdomain.StateConnected
}

// Connect opens the stream. Calling while already connecting or connected is a
// no-op, as is calling without a credential available.
func (c *StreamClient) Connect(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		slog.Warn("reservation stream credential lookup failed", slog.Any("error", err))
		return
	}
	if strings.TrimSpace(token) == "" {
		slog.Info("reservation stream disabled: no credential available")
		return
	}

	c.mu.Lock()
	if c.state != syncdomain.StateDisconnected {
		c.mu.Unlock()
		return
	}
	c.suspended = false
	c.stopRetryLocked()
	c.generation++
	gen := c.generation
	streamCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.parent = ctx
	c.state = syncdomain.StateConnecting
	c.mu.Unlock()

	c.notify(syncdomain.StateConnecting)
	go c.run(streamCtx, gen, token)
}

// Disconnect closes the stream and cancels any pending reconnect. Idempotent.
func (c *StreamClient) Disconnect() {
	c.teardown(false)
}

// Reconnect forces a fresh connection, used for manual refresh of the feed.
func (c *StreamClient) Reconnect(ctx context.Context) {
	c.Disconnect()
	c.Connect(ctx)
}

// Suspend proactively closes the stream without scheduling a retry. It is a
// cooperative resource-conservation measure (console tab hidden), not an error.
func (c *StreamClient) Suspend() {
	c.teardown(true)
}

// Resume reopens the stream after a Suspend when no stream is currently open.
func (c *StreamClient) Resume(ctx context.Context) {
	c.mu.Lock()
	if !c.suspended {
		c.mu.Unlock()
		return
	}
	c.suspended = false
	idle := c.state == syncdomain.StateDisconnected
	c.mu.Unlock()
	if idle {
		c.Connect(ctx)
	}
}

func (c *StreamClient) teardown(suspend bool) {
	c.mu.Lock()
	c.generation++
	c.stopRetryLocked()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if suspend {
		c.suspended = true
	}
	changed := c.state != syncdomain.StateDisconnected
	c.state = syncdomain.StateDisconnected
	c.mu.Unlock()

	if changed {
		c.notify(syncdomain.StateDisconnected)
	}
}

// stopRetryLocked cancels a pending scheduled reconnect. Caller holds mu.
func (c *StreamClient) stopRetryLocked() {
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
}

func (c *StreamClient) notify(state syncdomain.ConnectionState) {
	if c.onState != nil {
		c.onState(state)
	}
}

func (c *StreamClient) run(ctx context.Context, gen int, token string) {
	err := c.stream(ctx, gen, token)

	c.mu.Lock()
	if gen != c.generation {
		// Superseded by a disconnect, suspend or newer connect.
		c.mu.Unlock()
		return
	}
	c.cancel = nil
	c.state = syncdomain.StateDisconnected
	if ctx.Err() != nil {
		c.mu.Unlock()
		c.notify(syncdomain.StateDisconnected)
		return
	}
	delay := c.cfg.Backoff.Delay(c.retries)
	c.retries++
	attempt := c.retries
	parent := c.parent
	c.retryTimer = time.AfterFunc(delay, func() {
		c.Connect(parent)
	})
	c.mu.Unlock()

	c.notify(syncdomain.StateDisconnected)
	slog.Warn("reservation stream dropped, reconnect scheduled",
		slog.Duration("delay", delay), slog.Int("attempt", attempt), slog.Any("error", err))
}

func (c *StreamClient) stream(ctx context.Context, gen int, token string) error {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + c.cfg.Path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream endpoint returned %s", resp.Status)
	}

	c.opened(gen)
	return readStream(resp.Body, func(name string, data []byte) {
		c.handleEvent(ctx, name, data)
	})
}

// opened marks a successful stream open: the retry counter resets here and
// nowhere else.
func (c *StreamClient) opened(gen int) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.retries = 0
	c.state = syncdomain.StateConnected
	c.mu.Unlock()

	c.notify(syncdomain.StateConnected)
	slog.Info("reservation stream connected", slog.String("endpoint", c.cfg.Path))
}

// handleEvent decodes one feed message. Malformed payloads are logged and
// dropped; they never tear the stream down.
func (c *StreamClient) handleEvent(ctx context.Context, name string, data []byte) {
	if name == string(reservations.EventConnected) {
		slog.Debug("reservation stream acknowledged")
		return
	}
	event, err := reservations.DecodeEvent(name, data)
	if err != nil {
		slog.Warn("dropping malformed stream event", slog.String("event", name), slog.Any("error", err))
		return
	}
	if !event.Type.IsReservationMutation() {
		slog.Debug("ignoring stream event", slog.String("event", name))
		return
	}
	if c.sink != nil {
		c.sink(ctx, event)
	}
}
