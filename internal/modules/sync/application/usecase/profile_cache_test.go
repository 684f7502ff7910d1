package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	availability "mesaYaSync/internal/modules/availability/domain"
)

type fakeProfileFetcher struct {
	profile *availability.RestaurantProfile
	err     error
	calls   int
}

func (f *fakeProfileFetcher) FetchRestaurantProfile(ctx context.Context, token string) (*availability.RestaurantProfile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func TestProfileCacheServesWithinTTL(t *testing.T) {
	fetcher := &fakeProfileFetcher{profile: &availability.RestaurantProfile{MaxCapacity: 40}}
	cache := NewRestaurantProfileCache(fetcher, nil, time.Minute)
	clock := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		profile, err := cache.Get(ctx)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if profile.MaxCapacity != 40 {
			t.Fatalf("unexpected profile: %+v", profile)
		}
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected a single fetch within the TTL, got %d", fetcher.calls)
	}

	clock = clock.Add(2 * time.Minute)
	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("expired entry must re-fetch, calls=%d", fetcher.calls)
	}
}

func TestProfileCacheStaleFallbackOnError(t *testing.T) {
	fetcher := &fakeProfileFetcher{profile: &availability.RestaurantProfile{MaxCapacity: 55}}
	cache := NewRestaurantProfileCache(fetcher, nil, time.Minute)
	clock := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	ctx := context.Background()
	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("prime: %v", err)
	}

	clock = clock.Add(2 * time.Minute)
	fetcher.err = errors.New("backend down")
	profile, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("stale fallback should mask the error, got %v", err)
	}
	if profile.MaxCapacity != 55 {
		t.Fatalf("expected stale copy, got %+v", profile)
	}
}

func TestProfileCacheErrorWithoutStaleCopy(t *testing.T) {
	fetcher := &fakeProfileFetcher{err: errors.New("backend down")}
	cache := NewRestaurantProfileCache(fetcher, nil, time.Minute)

	if _, err := cache.Get(context.Background()); err == nil {
		t.Fatal("expected error with no cached copy to fall back to")
	}
}

func TestProfileCacheInvalidate(t *testing.T) {
	fetcher := &fakeProfileFetcher{profile: &availability.RestaurantProfile{MaxCapacity: 20}}
	cache := NewRestaurantProfileCache(fetcher, nil, time.Hour)
	ctx := context.Background()

	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("get: %v", err)
	}
	cache.Invalidate()
	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("invalidate must force a re-fetch, calls=%d", fetcher.calls)
	}
}
