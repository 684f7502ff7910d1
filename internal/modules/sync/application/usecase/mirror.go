package usecase

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	reservations "mesaYaSync/internal/modules/reservations/domain"
	"mesaYaSync/internal/modules/sync/application/port"
	"mesaYaSync/internal/shared/auth"
)

// ReservationMirror owns the in-memory reservation list mirrored from the
// backend. All mutations flow through Apply (feed events) or Refresh (wholesale
// REST reload); nothing else writes to the list. The mirror is a best-effort
// cache, not a source of truth: events apply in arrival order and a refresh is
// the resync lever.
type ReservationMirror struct {
	fetcher   port.ReservationFetcher
	tokens    auth.TokenSource
	publisher port.MirrorPublisher
	now       func() time.Time

	mu    sync.RWMutex
	items []reservations.Reservation

	refreshing atomic.Bool
}

func NewReservationMirror(fetcher port.ReservationFetcher, tokens auth.TokenSource, publisher port.MirrorPublisher) *ReservationMirror {
	return &ReservationMirror{
		fetcher:   fetcher,
		tokens:    tokens,
		publisher: publisher,
		now:       time.Now,
	}
}

// Reservations returns a copy of the current list, newest first.
func (m *ReservationMirror) Reservations() []reservations.Reservation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]reservations.Reservation, len(m.items))
	copy(items, m.items)
	return items
}

func (m *ReservationMirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Apply reconciles one feed event into the list. Unknown event types and
// updates for ids not present are dropped without touching the list.
func (m *ReservationMirror) Apply(ctx context.Context, event *reservations.Event) {
	if event == nil {
		return
	}

	var applied bool
	switch event.Type {
	case reservations.EventReservationCreated:
		applied = m.applyCreated(event)
	case reservations.EventReservationUpdated,
		reservations.EventReservationConfirmed,
		reservations.EventReservationCompleted:
		applied = m.applyMerge(event)
	case reservations.EventReservationCancelled:
		applied = m.applyCancelled(event)
	default:
		slog.Debug("mirror ignoring event", slog.String("type", string(event.Type)))
		return
	}

	if !applied {
		slog.Debug("mirror event not applicable", slog.String("type", string(event.Type)), slog.String("reservationId", event.Reservation.ID))
		return
	}
	if m.publisher != nil {
		m.publisher.PublishEvent(ctx, event)
	}
}

// applyCreated prepends a record synthesized from the partial snapshot. Fields
// the event omits stay empty; CreatedAt defaults to the current time.
func (m *ReservationMirror) applyCreated(event *reservations.Event) bool {
	record := event.Reservation
	if record.CreatedAt.IsZero() {
		record.CreatedAt = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]reservations.Reservation{record}, m.items...)
	return true
}

// applyMerge shallow-merges the snapshot over the existing record. Phone, notes
// and the original CreatedAt always survive: some event types omit them and the
// snapshot's zero values must never erase what the mirror already holds.
func (m *ReservationMirror) applyMerge(event *reservations.Event) bool {
	incoming := event.Reservation

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID != incoming.ID {
			continue
		}
		existing := &m.items[i]
		if incoming.RestaurantID != "" {
			existing.RestaurantID = incoming.RestaurantID
		}
		if incoming.CustomerName != "" {
			existing.CustomerName = incoming.CustomerName
		}
		if incoming.CustomerEmail != "" {
			existing.CustomerEmail = incoming.CustomerEmail
		}
		if incoming.Date != "" {
			existing.Date = incoming.Date
		}
		if incoming.Time != "" {
			existing.Time = incoming.Time
		}
		if incoming.Guests != 0 {
			existing.Guests = incoming.Guests
		}
		if incoming.Status != reservations.ReservationStatusUnknown {
			existing.Status = incoming.Status
		}
		if !incoming.UpdatedAt.IsZero() {
			existing.UpdatedAt = incoming.UpdatedAt
		}
		return true
	}
	return false
}

// applyCancelled drops the record entirely; a cancelled reservation leaves the
// active working set rather than being hidden.
func (m *ReservationMirror) applyCancelled(event *reservations.Event) bool {
	id := event.Reservation.ID

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}

// Refresh re-fetches the full list and replaces local state wholesale. A second
// call while one is in flight is a no-op, not queued. Fetch failures propagate
// to the caller; the list is left untouched on error.
func (m *ReservationMirror) Refresh(ctx context.Context) error {
	if !m.refreshing.CompareAndSwap(false, true) {
		slog.Debug("mirror refresh already in flight")
		return nil
	}
	defer m.refreshing.Store(false)

	var token string
	if m.tokens != nil {
		fetched, err := m.tokens.Token(ctx)
		if err != nil {
			return err
		}
		token = fetched
	}

	items, err := m.fetcher.FetchReservations(ctx, token)
	if err != nil {
		slog.Warn("mirror refresh failed", slog.Any("error", err))
		return err
	}

	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	slog.Info("mirror refreshed", slog.Int("reservations", len(items)))

	if m.publisher != nil {
		m.publisher.PublishSnapshot(ctx, m.Reservations())
	}
	return nil
}
