package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the production Strava API root.
const DefaultBaseURL = "https://www.strava.com/api/v3"

const (
	requestTimeout       = 8 * time.Second
	maxRateLimitAttempts = 3
	defaultRetryAfter    = 5 * time.Second
)

// Client is a rate-aware Strava API client. Every call resolves a valid
// access token first, retries once after a 401 (forcing a refresh), and
// backs off on 429 up to a fixed ceiling. Rate-limit headers from every
// response, success or failure, are recorded and available via RateLimit.
type Client struct {
	// BaseURL may be overridden before first use, e.g. in tests.
	BaseURL string

	httpClient *http.Client
	tokens     *TokenManager
	limits     *RateLimiter
}

// NewClient creates a client backed by the given token manager.
func NewClient(tokens *TokenManager) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		tokens:     tokens,
		limits:     NewRateLimiter(),
	}
}

// RateLimit returns the last-observed usage/limit headers.
func (c *Client) RateLimit() RateLimit {
	return c.limits.Snapshot()
}

// GetAthlete fetches the authenticated athlete's profile.
func (c *Client) GetAthlete(ctx context.Context) (*Athlete, error) {
	var athlete Athlete
	if err := c.getJSON(ctx, "/athlete", nil, &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// GetActivities fetches one page of the athlete's activities, newest first.
func (c *Client) GetActivities(ctx context.Context, page, perPage int) ([]Activity, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	var activities []Activity
	if err := c.getJSON(ctx, "/athlete/activities", params, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetAthleteStats fetches lifetime/recent totals for an athlete.
func (c *Client) GetAthleteStats(ctx context.Context, athleteID int64) (*Stats, error) {
	var stats Stats
	path := fmt.Sprintf("/athletes/%d/stats", athleteID)
	if err := c.getJSON(ctx, path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetClubs fetches the athlete's club memberships.
func (c *Client) GetClubs(ctx context.Context) ([]Club, error) {
	var clubs []Club
	if err := c.getJSON(ctx, "/athlete/clubs", nil, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// GetGear fetches detail for one piece of equipment.
func (c *Client) GetGear(ctx context.Context, gearID string) (*Gear, error) {
	var gear Gear
	if err := c.getJSON(ctx, "/gear/"+url.PathEscape(gearID), nil, &gear); err != nil {
		return nil, err
	}
	return &gear, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	refreshed := false
	throttled := 0

	for {
		token, err := c.tokens.EnsureAccessToken(ctx)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return &UpstreamError{Err: err}
		}

		c.limits.UpdateFromHeaders(resp.Header)

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("decoding %s response: %w", path, err)
			}
			return nil

		case resp.StatusCode == http.StatusUnauthorized:
			drain(resp)
			if refreshed {
				return ErrAuthFailed
			}
			refreshed = true
			if _, err := c.tokens.ForceRefresh(ctx); err != nil {
				return err
			}

		case resp.StatusCode == http.StatusTooManyRequests:
			wait := retryAfter(resp)
			drain(resp)
			throttled++
			if throttled >= maxRateLimitAttempts {
				return &RateLimitedError{Attempts: throttled}
			}
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}

		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return &UpstreamError{Status: resp.StatusCode, Body: string(body)}
		}
	}
}

// retryAfter reads the Retry-After header, falling back to a small default.
func retryAfter(resp *http.Response) time.Duration {
	if raw := resp.Header.Get("Retry-After"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultRetryAfter
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
