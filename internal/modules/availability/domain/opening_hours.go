package domain

import (
	"fmt"
	"strings"
	"time"

	"mesaYaSync/internal/shared/normalization"
)

// TimeSlot is one service period within a day, both bounds in HH:MM.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySchedule is the configuration for a single weekday. When Closed is true
// the periods are ignored regardless of content.
type DaySchedule struct {
	Closed bool       `json:"closed"`
	Slots  []TimeSlot `json:"slots"`
}

// OpeningHours maps weekdays to their schedule. A nil map means "no
// configuration": availability checks fall back to permissive defaults.
type OpeningHours map[time.Weekday]DaySchedule

// weekdayNames follows the uppercase english day names used by REST responses.
var weekdayNames = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

// NormalizeOpeningHours converts a loosely typed payload keyed by day name
// (e.g. {"MONDAY": {"closed": false, "slots": [{"start": "18:00", ...}]}})
// into typed OpeningHours. Unknown day names are skipped.
func NormalizeOpeningHours(value any) OpeningHours {
	container := normalization.MapFromPayload(value)
	if len(container) == 0 {
		return nil
	}

	hours := make(OpeningHours, len(container))
	for rawDay, rawSchedule := range container {
		day, ok := weekdayNames[strings.ToUpper(strings.TrimSpace(rawDay))]
		if !ok {
			continue
		}
		scheduleMap, ok := rawSchedule.(map[string]any)
		if !ok {
			continue
		}
		schedule := DaySchedule{Closed: normalization.AsBool(scheduleMap["closed"])}
		for _, rawSlot := range normalization.AsInterfaceSlice(scheduleMap["slots"]) {
			slotMap, ok := rawSlot.(map[string]any)
			if !ok {
				continue
			}
			slot := TimeSlot{
				Start: normalization.AsString(slotMap["start"]),
				End:   normalization.AsString(slotMap["end"]),
			}
			if slot.Start != "" || slot.End != "" {
				schedule.Slots = append(schedule.Slots, slot)
			}
		}
		hours[day] = schedule
	}
	if len(hours) == 0 {
		return nil
	}
	return hours
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(value string) (int, bool) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
