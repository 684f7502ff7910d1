package domain

import "strings"

// ReservationStatus represents the reservation lifecycle as exposed by the REST API.
// Status transitions are decided server side; this service only reflects them.
type ReservationStatus string

const (
	ReservationStatusUnknown   ReservationStatus = ""
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
)

var allowedReservationStatuses = map[string]ReservationStatus{
	string(ReservationStatusPending):   ReservationStatusPending,
	string(ReservationStatusConfirmed): ReservationStatusConfirmed,
	string(ReservationStatusCancelled): ReservationStatusCancelled,
	string(ReservationStatusCompleted): ReservationStatusCompleted,
}

// NormalizeReservationStatus returns the canonical ReservationStatus for the given input.
// Unknown statuses are uppercased and returned as-is to avoid data loss.
func NormalizeReservationStatus(value any) ReservationStatus {
	s, ok := value.(string)
	if !ok {
		return ReservationStatusUnknown
	}
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return ReservationStatusUnknown
	}
	if status, ok := allowedReservationStatuses[trimmed]; ok {
		return status
	}
	return ReservationStatus(trimmed)
}
