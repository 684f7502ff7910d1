package domain

// DayBlock marks one calendar date (2006-01-02) fully unavailable. It is an
// explicit per-date override, distinct from a weekday being closed in the
// recurring schedule.
type DayBlock struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

// IsDateBlocked reports whether the date has an explicit block.
func IsDateBlocked(blocks []DayBlock, date string) bool {
	_, blocked := BlockReason(blocks, date)
	return blocked
}

// BlockReason returns the reason recorded for a blocked date. The second return
// distinguishes "blocked without reason" from "not blocked".
func BlockReason(blocks []DayBlock, date string) (string, bool) {
	key := dateKey(date)
	if key == "" {
		return "", false
	}
	for _, block := range blocks {
		if dateKey(block.Date) == key {
			return block.Reason, true
		}
	}
	return "", false
}
