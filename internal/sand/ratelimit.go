package sand

import "time"

// RateLimiter lets an operation fire at most once per interval.
type RateLimiter struct {
	interval time.Duration
	last     time.Time
	fired    bool
}

// NewRateLimiter creates a limiter. A zero interval never blocks.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	if interval < 0 {
		interval = 0
	}
	return &RateLimiter{interval: interval}
}

// Interval returns the minimum time between two firings.
func (l *RateLimiter) Interval() time.Duration {
	return l.interval
}

// Allow reports whether the operation may fire at now, and records the
// firing if so.
func (l *RateLimiter) Allow(now time.Time) bool {
	if l.fired && now.Sub(l.last) < l.interval {
		return false
	}
	l.last = now
	l.fired = true
	return true
}

// Reset forgets the last firing.
func (l *RateLimiter) Reset() {
	l.fired = false
	l.last = time.Time{}
}
