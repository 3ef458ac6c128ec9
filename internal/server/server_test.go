package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/AshifAli007/portfolio-v4/internal/cache"
	"github.com/AshifAli007/portfolio-v4/internal/config"
	"github.com/AshifAli007/portfolio-v4/internal/fitness"
	"github.com/AshifAli007/portfolio-v4/internal/service"
	"github.com/AshifAli007/portfolio-v4/internal/strava"
)

// fixedAPI serves one athlete and a single-activity history.
type fixedAPI struct{}

func (fixedAPI) GetAthlete(ctx context.Context) (*strava.Athlete, error) {
	return &strava.Athlete{ID: 42, Firstname: "Ada"}, nil
}

func (fixedAPI) GetActivities(ctx context.Context, page, perPage int) ([]strava.Activity, error) {
	if page > 1 {
		return nil, nil
	}
	meters := 10000.0
	moving := 3000
	return []strava.Activity{{
		ID:         1,
		Name:       "Morning Run",
		SportType:  "Run",
		StartDate:  time.Now().UTC().Add(-24 * time.Hour),
		Distance:   &meters,
		MovingTime: &moving,
	}}, nil
}

func (fixedAPI) GetAthleteStats(ctx context.Context, athleteID int64) (*strava.Stats, error) {
	return &strava.Stats{}, nil
}

func (fixedAPI) GetClubs(ctx context.Context) ([]strava.Club, error) { return nil, nil }

func (fixedAPI) GetGear(ctx context.Context, gearID string) (*strava.Gear, error) {
	return nil, strava.ErrAuthFailed
}

func (fixedAPI) RateLimit() strava.RateLimit {
	return strava.RateLimit{Usage: "1,1", Limit: "200,2000"}
}

func newTestServer(cfg config.Config) *Server {
	svc := service.NewOverviewService(fixedAPI{}, cache.New(), cfg, nil, zap.NewNop())
	return New(svc, zap.NewNop())
}

func configuredConfig() config.Config {
	return config.Config{
		ClientID:      "id",
		ClientSecret:  "secret",
		RefreshToken:  "refresh",
		CacheTTL:      time.Minute,
		LookbackDays:  180,
		MaxActivities: 200,
	}
}

func TestOverviewRoute(t *testing.T) {
	srv := httptest.NewServer(newTestServer(configuredConfig()).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/strava/overview")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != overviewCacheControl {
		t.Errorf("Cache-Control = %q, want %q", cc, overviewCacheControl)
	}

	var overview fitness.Overview
	if err := json.NewDecoder(resp.Body).Decode(&overview); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if overview.Athlete == nil || overview.Athlete.ID != 42 {
		t.Errorf("Athlete = %+v", overview.Athlete)
	}
	if len(overview.RecentActivities) != 1 {
		t.Errorf("RecentActivities = %+v", overview.RecentActivities)
	}
}

func TestActivitiesRoute(t *testing.T) {
	srv := httptest.NewServer(newTestServer(configuredConfig()).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/strava/activities")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var activities []fitness.Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(activities) != 1 || activities[0].SportType != "Run" {
		t.Errorf("activities = %+v", activities)
	}
}

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not configured", strava.ErrNotConfigured, http.StatusServiceUnavailable},
		{"auth config", &strava.AuthConfigError{Reason: "no refresh token available"}, http.StatusServiceUnavailable},
		{"rate limited", fmt.Errorf("fetching activities: %w", &strava.RateLimitedError{Attempts: 3}), http.StatusServiceUnavailable},
		{"auth failed", strava.ErrAuthFailed, http.StatusBadGateway},
		{"token refresh", fmt.Errorf("fetching athlete: %w", &strava.TokenRefreshError{Status: 400, Body: "bad grant"}), http.StatusBadGateway},
		{"upstream", &strava.UpstreamError{Status: 500, Body: "boom"}, http.StatusBadGateway},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError},
	}

	s := New(nil, zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.writeError(rec, tt.err, "failed")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestUnconfiguredReturns503(t *testing.T) {
	srv := httptest.NewServer(newTestServer(config.Config{}).Routes())
	defer srv.Close()

	for _, path := range []string{"/api/strava/activities", "/api/strava/overview"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d, want 503", path, resp.StatusCode)
		}
	}
}
