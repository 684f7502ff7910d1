package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	availability "mesaYaSync/internal/modules/availability/domain"
	"mesaYaSync/internal/modules/sync/application/port"
	"mesaYaSync/internal/shared/auth"
)

// RestaurantProfileCache serves the availability configuration, re-fetching it
// from the REST API when the cached copy goes stale. A fetch failure falls back
// to the stale copy when one exists, so transient backend errors do not blank
// out the calendar.
type RestaurantProfileCache struct {
	fetcher port.RestaurantProfileFetcher
	tokens  auth.TokenSource
	ttl     time.Duration
	now     func() time.Time

	mu        sync.Mutex
	cached    *availability.RestaurantProfile
	fetchedAt time.Time
}

func NewRestaurantProfileCache(fetcher port.RestaurantProfileFetcher, tokens auth.TokenSource, ttl time.Duration) *RestaurantProfileCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RestaurantProfileCache{fetcher: fetcher, tokens: tokens, ttl: ttl, now: time.Now}
}

func (p *RestaurantProfileCache) Get(ctx context.Context) (*availability.RestaurantProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil && p.now().Sub(p.fetchedAt) < p.ttl {
		return p.cached, nil
	}

	var token string
	if p.tokens != nil {
		fetched, err := p.tokens.Token(ctx)
		if err == nil {
			token = fetched
		}
	}

	profile, err := p.fetcher.FetchRestaurantProfile(ctx, token)
	if err != nil {
		if p.cached != nil {
			slog.Warn("restaurant profile fetch failed, serving cached copy",
				slog.Time("fetchedAt", p.fetchedAt), slog.Any("error", err))
			return p.cached, nil
		}
		return nil, err
	}

	p.cached = profile
	p.fetchedAt = p.now()
	return profile, nil
}

// Invalidate forces the next Get to re-fetch.
func (p *RestaurantProfileCache) Invalidate() {
	p.mu.Lock()
	p.cached = nil
	p.mu.Unlock()
}
