package ratelimit

import (
	"sync"
	"time"
)

// RateLimiter enforces a per-key sliding-window request limit. Used to
// cap manual calendar sync triggers per agent so one agent cannot hammer
// the provider API.
type RateLimiter struct {
	requestsPerHour int
	enabled         bool

	windows map[string][]time.Time
	mu      sync.Mutex
}

// NewRateLimiter creates a rate limiter allowing requestsPerHour per key
func NewRateLimiter(requestsPerHour int, enabled bool) *RateLimiter {
	return &RateLimiter{
		requestsPerHour: requestsPerHour,
		enabled:         enabled,
		windows:         make(map[string][]time.Time),
	}
}

// AllowRequest reports whether the key may make another request now, and
// records it if so.
func (rl *RateLimiter) AllowRequest(key string) bool {
	if !rl.enabled || rl.requestsPerHour <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	window := filterTimes(rl.windows[key], now.Add(-1*time.Hour))

	if len(window) >= rl.requestsPerHour {
		rl.windows[key] = window
		return false
	}

	rl.windows[key] = append(window, now)
	return true
}

// Remaining returns how many requests the key has left in the current window
func (rl *RateLimiter) Remaining(key string) int {
	if !rl.enabled || rl.requestsPerHour <= 0 {
		return -1
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	window := filterTimes(rl.windows[key], time.Now().Add(-1*time.Hour))
	rl.windows[key] = window

	remaining := rl.requestsPerHour - len(window)
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// filterTimes keeps entries newer than the cutoff
func filterTimes(times []time.Time, cutoff time.Time) []time.Time {
	kept := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
