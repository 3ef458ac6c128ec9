package strava

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned before any network I/O when the integration
// lacks client credentials or a usable token.
var ErrNotConfigured = errors.New("strava credentials are not configured")

// ErrAuthFailed is returned when a request still gets a 401 after one forced
// token refresh. A second refresh would not help; the grant itself is bad.
var ErrAuthFailed = errors.New("strava request unauthorized after token refresh")

// AuthConfigError reports that a token refresh was needed but no usable
// credential exists to perform it.
type AuthConfigError struct {
	Reason string
}

func (e *AuthConfigError) Error() string {
	return "strava auth not usable: " + e.Reason
}

// TokenRefreshError reports a failed OAuth token refresh, carrying the
// upstream HTTP status and response body for diagnosis.
type TokenRefreshError struct {
	Status int
	Body   string
}

func (e *TokenRefreshError) Error() string {
	return fmt.Sprintf("strava token refresh failed (%d): %s", e.Status, e.Body)
}

// RateLimitedError reports that the 429 retry ceiling was exhausted.
type RateLimitedError struct {
	Attempts int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("strava rate limit hit, gave up after %d attempts", e.Attempts)
}

// UpstreamError reports any other non-2xx response or a transport failure.
// Status is zero for transport-level errors such as timeouts.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("strava request failed: %v", e.Err)
	}
	return fmt.Sprintf("strava request failed (%d): %s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
