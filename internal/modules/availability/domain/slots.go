package domain

import "time"

// Bookable times are generated on 30-minute boundaries.
const slotInterval = 30

// AvailableTimeSlots expands the day's service periods into bookable HH:MM
// times: every 30-minute boundary from each period's start (inclusive) up to
// its end (exclusive). A closed or unconfigured day yields nothing, and a
// period whose start is not strictly before its end yields no entries.
//
// Periods are expanded in declaration order and their outputs concatenated
// without de-duplication or sorting, so overlapping periods can repeat times.
// This mirrors the behaviour consoles already render against.
func AvailableTimeSlots(hours OpeningHours, day time.Weekday) []string {
	schedule, ok := hours[day]
	if !ok || schedule.Closed || len(schedule.Slots) == 0 {
		return nil
	}

	var times []string
	for _, period := range schedule.Slots {
		start, okStart := parseClock(period.Start)
		end, okEnd := parseClock(period.End)
		if !okStart || !okEnd {
			continue
		}
		for at := start; at < end; at += slotInterval {
			times = append(times, formatClock(at))
		}
	}
	return times
}

// WithinOpeningHours reports whether the HH:MM value falls inside [start, end)
// of any service period on the given day. When enforce is false, or no opening
// hours are configured, the check is permissive and always passes.
func WithinOpeningHours(hours OpeningHours, day time.Weekday, clock string, enforce bool) bool {
	if !enforce || hours == nil {
		return true
	}
	schedule, ok := hours[day]
	if !ok || schedule.Closed {
		return false
	}
	at, ok := parseClock(clock)
	if !ok {
		return false
	}
	for _, period := range schedule.Slots {
		start, okStart := parseClock(period.Start)
		end, okEnd := parseClock(period.End)
		if !okStart || !okEnd {
			continue
		}
		if at >= start && at < end {
			return true
		}
	}
	return false
}
