package strava

import (
	"net/http"
	"testing"
)

func TestUpdateFromHeaders(t *testing.T) {
	tests := []struct {
		name      string
		usage     string
		limit     string
		wantShort int
		wantDaily int
		wantUsage string
	}{
		{name: "normal pair", usage: "34,512", limit: "100,1000", wantShort: 66, wantDaily: 488, wantUsage: "34,512"},
		{name: "spaces tolerated", usage: " 10, 20 ", limit: "100,1000", wantShort: 90, wantDaily: 980, wantUsage: " 10, 20 "},
		{name: "garbage keeps defaults", usage: "nope", limit: "", wantShort: 100, wantDaily: 1000, wantUsage: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRateLimiter()
			h := http.Header{}
			if tt.usage != "" {
				h.Set("X-RateLimit-Usage", tt.usage)
			}
			if tt.limit != "" {
				h.Set("X-RateLimit-Limit", tt.limit)
			}
			r.UpdateFromHeaders(h)

			short, daily := r.Remaining()
			if short != tt.wantShort || daily != tt.wantDaily {
				t.Errorf("Remaining = (%d, %d), want (%d, %d)", short, daily, tt.wantShort, tt.wantDaily)
			}
			if got := r.Snapshot().Usage; got != tt.wantUsage {
				t.Errorf("Snapshot.Usage = %q, want %q", got, tt.wantUsage)
			}
		})
	}
}

func TestUpdateFromHeadersNoHeadersKeepsSnapshot(t *testing.T) {
	r := NewRateLimiter()
	h := http.Header{}
	h.Set("X-RateLimit-Usage", "5,50")
	h.Set("X-RateLimit-Limit", "100,1000")
	r.UpdateFromHeaders(h)

	// A header-less response (e.g. a transport error path) must not wipe the
	// last-observed values.
	r.UpdateFromHeaders(http.Header{})

	if got := r.Snapshot().Usage; got != "5,50" {
		t.Errorf("Snapshot.Usage = %q, want %q", got, "5,50")
	}
}
