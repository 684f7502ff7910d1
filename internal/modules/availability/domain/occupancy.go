package domain

import (
	"strings"
	"time"

	reservations "mesaYaSync/internal/modules/reservations/domain"
)

// UI signalling thresholds, expressed as occupancy percentages. They inform
// calendar colouring only and never reject a booking.
const (
	nearCapacityPercent = 70
	atCapacityPercent   = 90
)

// DayOccupancy aggregates guest counts for a single calendar date.
type DayOccupancy struct {
	Date         string  `json:"date"`
	Guests       int     `json:"guests"`
	MaxCapacity  int     `json:"maxCapacity"`
	Percentage   float64 `json:"percentage"`
	NearCapacity bool    `json:"nearCapacity"`
	AtCapacity   bool    `json:"atCapacity"`
}

// MonthOccupancy aggregates guest counts for a calendar month. MaxCapacity is
// the daily capacity multiplied by the number of days in the month (linear
// scaling, not service-aware). BusiestDate is the date with the highest summed
// guest count; on ties the first-encountered date wins, iterating reservations
// in input order.
type MonthOccupancy struct {
	Month         string  `json:"month"`
	Guests        int     `json:"guests"`
	MaxCapacity   int     `json:"maxCapacity"`
	Percentage    float64 `json:"percentage"`
	NearCapacity  bool    `json:"nearCapacity"`
	AtCapacity    bool    `json:"atCapacity"`
	BusiestDate   string  `json:"busiestDate,omitempty"`
	BusiestGuests int     `json:"busiestGuests"`
}

// ComputeDayOccupancy sums the party sizes booked for the date, excluding
// cancelled reservations, against the configured daily capacity.
func ComputeDayOccupancy(items []reservations.Reservation, date string, maxCapacity int) DayOccupancy {
	key := dateKey(date)
	occupancy := DayOccupancy{Date: key, MaxCapacity: maxCapacity}
	for _, item := range items {
		if item.Status == reservations.ReservationStatusCancelled {
			continue
		}
		if dateKey(item.Date) != key {
			continue
		}
		occupancy.Guests += item.Guests
	}
	occupancy.Percentage = capacityPercent(occupancy.Guests, maxCapacity)
	occupancy.NearCapacity = occupancy.Percentage >= nearCapacityPercent
	occupancy.AtCapacity = occupancy.Percentage >= atCapacityPercent
	return occupancy
}

// ComputeMonthOccupancy aggregates the month (2006-01), returning false when
// the month value does not parse.
func ComputeMonthOccupancy(items []reservations.Reservation, month string, maxCapacity int) (MonthOccupancy, bool) {
	parsed, err := time.Parse("2006-01", strings.TrimSpace(month))
	if err != nil {
		return MonthOccupancy{}, false
	}
	monthKey := parsed.Format("2006-01")
	days := daysInMonth(parsed)

	occupancy := MonthOccupancy{Month: monthKey, MaxCapacity: maxCapacity * days}

	totals := make(map[string]int)
	var order []string
	for _, item := range items {
		if item.Status == reservations.ReservationStatusCancelled {
			continue
		}
		date := dateKey(item.Date)
		if !strings.HasPrefix(date, monthKey+"-") {
			continue
		}
		occupancy.Guests += item.Guests
		if _, seen := totals[date]; !seen {
			order = append(order, date)
		}
		totals[date] += item.Guests
	}

	for _, date := range order {
		if totals[date] > occupancy.BusiestGuests {
			occupancy.BusiestGuests = totals[date]
			occupancy.BusiestDate = date
		}
	}

	occupancy.Percentage = capacityPercent(occupancy.Guests, occupancy.MaxCapacity)
	occupancy.NearCapacity = occupancy.Percentage >= nearCapacityPercent
	occupancy.AtCapacity = occupancy.Percentage >= atCapacityPercent
	return occupancy, true
}

func capacityPercent(guests, maxCapacity int) float64 {
	if maxCapacity <= 0 {
		return 0
	}
	percent := float64(guests) / float64(maxCapacity) * 100
	if percent > 100 {
		return 100
	}
	return percent
}

func daysInMonth(at time.Time) int {
	return time.Date(at.Year(), at.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateKey keeps only the ISO date portion of a possibly timestamped value.
func dateKey(value string) string {
	value = strings.TrimSpace(value)
	if idx := strings.IndexByte(value, 'T'); idx >= 0 {
		value = value[:idx]
	}
	return value
}
