package domain

import (
	"testing"
	"time"
)

func TestNormalizeOpeningHours(t *testing.T) {
	payload := map[string]any{
		"monday": map[string]any{
			"closed": false,
			"slots": []any{
				map[string]any{"start": "12:00", "end": "15:00"},
				map[string]any{"start": "18:00", "end": "23:00"},
			},
		},
		"TUESDAY": map[string]any{"closed": true},
		"someday": map[string]any{"closed": false},
	}

	hours := NormalizeOpeningHours(payload)
	if hours == nil {
		t.Fatal("expected opening hours")
	}

	monday, ok := hours[time.Monday]
	if !ok {
		t.Fatal("expected monday schedule")
	}
	if monday.Closed || len(monday.Slots) != 2 {
		t.Fatalf("unexpected monday schedule: %+v", monday)
	}
	if monday.Slots[0].Start != "12:00" || monday.Slots[1].End != "23:00" {
		t.Fatalf("slots out of declaration order: %+v", monday.Slots)
	}

	tuesday, ok := hours[time.Tuesday]
	if !ok || !tuesday.Closed {
		t.Fatalf("expected closed tuesday, got %+v", tuesday)
	}

	if len(hours) != 2 {
		t.Fatalf("unknown day names must be skipped, got %d entries", len(hours))
	}
}

func TestNormalizeOpeningHoursEmptyPayload(t *testing.T) {
	if hours := NormalizeOpeningHours(nil); hours != nil {
		t.Fatalf("expected nil for empty payload, got %v", hours)
	}
	if hours := NormalizeOpeningHours(map[string]any{"holiday": "yes"}); hours != nil {
		t.Fatalf("expected nil without any valid day, got %v", hours)
	}
}

func TestNormalizeRestaurantProfile(t *testing.T) {
	payload := map[string]any{
		"data": map[string]any{
			"maxCapacity": float64(40),
			"openingHours": map[string]any{
				"FRIDAY": map[string]any{
					"slots": []any{map[string]any{"start": "18:00", "end": "22:00"}},
				},
			},
			"blockedDates": []any{
				map[string]any{"date": "2026-12-24", "reason": "private event"},
				map[string]any{"reason": "missing date"},
			},
		},
	}

	profile, ok := NormalizeRestaurantProfile(payload)
	if !ok {
		t.Fatal("expected profile")
	}
	if profile.MaxCapacity != 40 {
		t.Fatalf("unexpected capacity %d", profile.MaxCapacity)
	}
	if len(profile.BlockedDates) != 1 || profile.BlockedDates[0].Date != "2026-12-24" {
		t.Fatalf("unexpected blocked dates %+v", profile.BlockedDates)
	}
	if len(profile.OpeningHours) != 1 {
		t.Fatalf("unexpected opening hours %+v", profile.OpeningHours)
	}
}

func TestBlockReason(t *testing.T) {
	blocks := []DayBlock{
		{Date: "2026-12-24", Reason: "private event"},
		{Date: "2026-12-25"},
	}

	if reason, blocked := BlockReason(blocks, "2026-12-24"); !blocked || reason != "private event" {
		t.Fatalf("unexpected result: %q %v", reason, blocked)
	}
	if _, blocked := BlockReason(blocks, "2026-12-25"); !blocked {
		t.Fatal("expected reasonless block to match")
	}
	if IsDateBlocked(blocks, "2026-12-26") {
		t.Fatal("expected unblocked date")
	}
	if IsDateBlocked(blocks, "2026-12-24T00:00:00Z") != true {
		t.Fatal("expected timestamped date to match the ISO portion")
	}
}
