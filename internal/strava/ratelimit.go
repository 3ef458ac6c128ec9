package strava

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// Strava rate limits:
// - 100 requests per 15 minutes
// - 1000 requests per day
// Both are reported on every response as comma-separated header pairs.

// RateLimit is the last-observed usage/limit header pair, kept verbatim so
// callers can surface it for observability.
type RateLimit struct {
	Usage string // e.g. "34,512"
	Limit string // e.g. "100,1000"
}

// RateLimiter tracks Strava's rate-limit headers across requests.
type RateLimiter struct {
	mu sync.Mutex

	last RateLimit

	shortLimit int
	shortUsage int
	dailyLimit int
	dailyUsage int
}

// NewRateLimiter creates a tracker seeded with Strava's documented limits.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		shortLimit: 100,
		dailyLimit: 1000,
	}
}

// UpdateFromHeaders records rate limit state from a Strava response.
func (r *RateLimiter) UpdateFromHeaders(h http.Header) {
	usage := h.Get("X-RateLimit-Usage")
	limit := h.Get("X-RateLimit-Limit")
	if usage == "" && limit == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if usage != "" {
		r.last.Usage = usage
		if short, daily, ok := parsePair(usage); ok {
			r.shortUsage = short
			r.dailyUsage = daily
		}
	}
	if limit != "" {
		r.last.Limit = limit
		if short, daily, ok := parsePair(limit); ok {
			r.shortLimit = short
			r.dailyLimit = daily
		}
	}
}

// Snapshot returns the last-observed raw header pair.
func (r *RateLimiter) Snapshot() RateLimit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Remaining returns how many requests are left in each window.
func (r *RateLimiter) Remaining() (short, daily int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shortLimit - r.shortUsage, r.dailyLimit - r.dailyUsage
}

func parsePair(v string) (short, daily int, ok bool) {
	parts := strings.Split(v, ",")
	if len(parts) < 2 {
		return 0, 0, false
	}
	short, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	daily, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return short, daily, true
}
