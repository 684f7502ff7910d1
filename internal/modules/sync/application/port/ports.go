package port

import (
	"context"
	"errors"

	availability "mesaYaSync/internal/modules/availability/domain"
	reservations "mesaYaSync/internal/modules/reservations/domain"
)

var (
	ErrFetchUnauthorized = errors.New("reservation fetch unauthorized")
	ErrFetchNotFound     = errors.New("reservation fetch not found")
	ErrFetchFailed       = errors.New("reservation fetch failed")
)

// ReservationFetcher loads the full reservation list from the REST API. Used by
// the manual refresh path; the feed never goes through it.
type ReservationFetcher interface {
	FetchReservations(ctx context.Context, token string) ([]reservations.Reservation, error)
}

// RestaurantProfileFetcher loads the availability configuration (opening
// hours, blocked dates, capacity) for the current restaurant.
type RestaurantProfileFetcher interface {
	FetchRestaurantProfile(ctx context.Context, token string) (*availability.RestaurantProfile, error)
}

// MirrorPublisher receives every feed event the mirror applied, plus wholesale
// snapshots after a refresh. Implementations fan the data out to console
// clients; a nil publisher is valid and drops everything.
type MirrorPublisher interface {
	PublishEvent(ctx context.Context, event *reservations.Event)
	PublishSnapshot(ctx context.Context, items []reservations.Reservation)
}
