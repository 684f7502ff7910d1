package domain

import "time"

// Backoff computes reconnect delays: Base doubled per consecutive failure,
// capped at Max. The attempt counter resets only on a successful stream open.
type Backoff struct {
	Base time.Duration
	Max  time.Duration
}

// DefaultBackoff matches the console contract: 1s, 2s, 4s, ... capped at 30s.
var DefaultBackoff = Backoff{Base: time.Second, Max: 30 * time.Second}

// Delay returns the wait before the attempt'th retry (zero-based).
func (b Backoff) Delay(attempt int) time.Duration {
	base := b.Base
	if base <= 0 {
		base = DefaultBackoff.Base
	}
	max := b.Max
	if max <= 0 {
		max = DefaultBackoff.Max
	}
	if attempt < 0 {
		attempt = 0
	}
	delay := base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}
