package ratelimit

import (
	"net/http"
	"time"
)

// Limiter decides whether the bucket identified by key may spend a token.
type Limiter interface {
	Allow(key string) bool
}

// KeyFunc picks the bucket a request is charged to.
type KeyFunc func(r *http.Request) string

// Clock is the time source of the token bucket.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter lets every request through; used when RATE_LIMIT_ENABLED=false.
type NopLimiter struct{}

// Allow always returns true.
func (NopLimiter) Allow(string) bool { return true }
