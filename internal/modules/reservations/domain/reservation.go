package domain

import (
	"time"

	"mesaYaSync/internal/shared/normalization"
)

// Reservation is a booking held in the local mirror. Date is an ISO calendar
// date (2006-01-02) and Time a wall clock in HH:MM.
type Reservation struct {
	ID            string            `json:"id"`
	RestaurantID  string            `json:"restaurantId"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	CustomerPhone string            `json:"customerPhone"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Guests        int               `json:"partySize"`
	Status        ReservationStatus `json:"status"`
	Notes         string            `json:"notes"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// ReservationList aggregates reservations with the total reported by the API.
type ReservationList struct {
	Items []Reservation
	Total int
}

// NormalizeReservation constructs a Reservation from a loosely typed map.
// Returns false when no usable id is present.
func NormalizeReservation(raw map[string]any) (Reservation, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return Reservation{}, false
	}

	guests := normalization.AsInt(raw["partySize"])
	if guests == 0 {
		guests = normalization.AsInt(raw["guests"])
	}

	reservation := Reservation{
		ID:            id,
		RestaurantID:  normalization.AsString(raw["restaurantId"]),
		CustomerName:  normalization.AsString(raw["customerName"]),
		CustomerEmail: normalization.AsString(raw["customerEmail"]),
		CustomerPhone: normalization.AsString(raw["customerPhone"]),
		Date:          normalization.AsString(raw["date"]),
		Time:          normalization.AsString(raw["time"]),
		Guests:        guests,
		Notes:         normalization.AsString(raw["notes"]),
		CreatedAt:     normalization.AsTime(raw["createdAt"]),
		UpdatedAt:     normalization.AsTime(raw["updatedAt"]),
	}
	reservation.Status = NormalizeReservationStatus(raw["status"])
	return reservation, true
}

// BuildReservationList projects list payloads into a ReservationList, accepting
// either {items: [...]} or {reservations: [...]} envelopes.
func BuildReservationList(payload any) (*ReservationList, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}

	rawItems := normalization.AsInterfaceSlice(container["items"])
	if len(rawItems) == 0 {
		rawItems = normalization.AsInterfaceSlice(container["reservations"])
	}
	if len(rawItems) == 0 {
		return nil, false
	}

	result := &ReservationList{Items: make([]Reservation, 0, len(rawItems))}
	for _, item := range rawItems {
		rawMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if reservation, ok := NormalizeReservation(rawMap); ok {
			result.Items = append(result.Items, reservation)
		}
	}
	if len(result.Items) == 0 {
		return nil, false
	}

	if total := normalization.AsInt(container["total"]); total > 0 {
		result.Total = total
	} else {
		result.Total = len(result.Items)
	}
	return result, true
}
