package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	availability "mesaYaSync/internal/modules/availability/domain"
	reservations "mesaYaSync/internal/modules/reservations/domain"
	"mesaYaSync/internal/modules/sync/application/port"
)

const (
	reservationsPath = "/api/v1/restaurant/reservations"
	restaurantPath   = "/api/v1/restaurant/me"
)

// RestaurantHTTPClient talks to the backend REST API for the request/response
// paths: the wholesale reservation reload and the availability configuration.
type RestaurantHTTPClient struct {
	baseURL string
	httpc   *http.Client
}

func NewRestaurantHTTPClient(baseURL string, timeout time.Duration, httpc *http.Client) *RestaurantHTTPClient {
	if httpc == nil {
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpc = &http.Client{Timeout: timeout}
	}
	return &RestaurantHTTPClient{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

// FetchReservations loads the full reservation list for the current restaurant.
func (c *RestaurantHTTPClient) FetchReservations(ctx context.Context, token string) ([]reservations.Reservation, error) {
	payload, err := c.getJSON(ctx, reservationsPath, token)
	if err != nil {
		return nil, err
	}

	if list, ok := reservations.BuildReservationList(payload); ok {
		return list.Items, nil
	}
	// Some deployments return a bare array instead of an envelope.
	if rawItems, ok := payload.([]any); ok {
		items := make([]reservations.Reservation, 0, len(rawItems))
		for _, raw := range rawItems {
			rawMap, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if reservation, ok := reservations.NormalizeReservation(rawMap); ok {
				items = append(items, reservation)
			}
		}
		return items, nil
	}
	return nil, fmt.Errorf("%w: unrecognized reservation payload", port.ErrFetchFailed)
}

// FetchRestaurantProfile loads opening hours, blocked dates and capacity.
func (c *RestaurantHTTPClient) FetchRestaurantProfile(ctx context.Context, token string) (*availability.RestaurantProfile, error) {
	payload, err := c.getJSON(ctx, restaurantPath, token)
	if err != nil {
		return nil, err
	}
	profile, ok := availability.NormalizeRestaurantProfile(payload)
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized restaurant payload", port.ErrFetchFailed)
	}
	return profile, nil
}

func (c *RestaurantHTTPClient) getJSON(ctx context.Context, path, token string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, port.ErrFetchUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, port.ErrFetchNotFound
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: status %d", port.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrFetchFailed, err)
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrFetchFailed, err)
	}
	return payload, nil
}
