package domain

import "mesaYaSync/internal/shared/normalization"

// RestaurantProfile is the availability-relevant slice of the restaurant
// configuration served by the REST API.
type RestaurantProfile struct {
	OpeningHours OpeningHours
	BlockedDates []DayBlock
	MaxCapacity  int
}

// NormalizeRestaurantProfile projects a restaurant payload into a profile.
// Returns false when the payload carries none of the expected fields.
func NormalizeRestaurantProfile(payload any) (*RestaurantProfile, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}

	profile := &RestaurantProfile{
		OpeningHours: NormalizeOpeningHours(container["openingHours"]),
		MaxCapacity:  normalization.AsInt(container["maxCapacity"]),
	}
	for _, rawBlock := range normalization.AsInterfaceSlice(container["blockedDates"]) {
		blockMap, ok := rawBlock.(map[string]any)
		if !ok {
			continue
		}
		block := DayBlock{
			Date:   normalization.AsString(blockMap["date"]),
			Reason: normalization.AsString(blockMap["reason"]),
		}
		if block.Date != "" {
			profile.BlockedDates = append(profile.BlockedDates, block)
		}
	}

	if profile.OpeningHours == nil && profile.BlockedDates == nil && profile.MaxCapacity == 0 {
		return nil, false
	}
	return profile, true
}
