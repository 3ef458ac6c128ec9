package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gobuffalo/envy"
)

func TestConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"all credentials", Config{ClientID: "id", ClientSecret: "s", RefreshToken: "r"}, true},
		{"access token only", Config{ClientID: "id", ClientSecret: "s", AccessToken: "a"}, true},
		{"no tokens", Config{ClientID: "id", ClientSecret: "s"}, false},
		{"missing client id", Config{ClientSecret: "s", RefreshToken: "r"}, false},
		{"missing secret", Config{ClientID: "id", RefreshToken: "r"}, false},
		{"empty", Config{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Configured(); got != tt.want {
				t.Errorf("Configured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	envy.Temp(func() {
		cfg := Load()
		if cfg.CacheTTL != DefaultCacheTTLSeconds*time.Second {
			t.Errorf("CacheTTL = %v, want %v", cfg.CacheTTL, DefaultCacheTTLSeconds*time.Second)
		}
		if cfg.LookbackDays != DefaultLookbackDays {
			t.Errorf("LookbackDays = %d, want %d", cfg.LookbackDays, DefaultLookbackDays)
		}
		if cfg.MaxActivities != DefaultMaxActivities {
			t.Errorf("MaxActivities = %d, want %d", cfg.MaxActivities, DefaultMaxActivities)
		}
		if cfg.ListenAddr != DefaultListenAddr {
			t.Errorf("ListenAddr = %s, want %s", cfg.ListenAddr, DefaultListenAddr)
		}
	})
}

func TestLoadOverrides(t *testing.T) {
	envy.Temp(func() {
		envy.Set("STRAVA_CLIENT_ID", "cid")
		envy.Set("STRAVA_CLIENT_SECRET", "csecret")
		envy.Set("STRAVA_REFRESH_TOKEN", "rt")
		envy.Set("STRAVA_CACHE_TTL_SECONDS", "300")
		envy.Set("STRAVA_MAX_ACTIVITIES", "50")
		envy.Set("STRAVA_ACCESS_TOKEN_EXPIRES_AT", "1780000000")

		cfg := Load()
		if !cfg.Configured() {
			t.Error("Configured() = false with full credentials")
		}
		if cfg.CacheTTL != 300*time.Second {
			t.Errorf("CacheTTL = %v, want 300s", cfg.CacheTTL)
		}
		if cfg.MaxActivities != 50 {
			t.Errorf("MaxActivities = %d, want 50", cfg.MaxActivities)
		}
		if cfg.AccessTokenExpiresAt.Unix() != 1780000000 {
			t.Errorf("AccessTokenExpiresAt = %v", cfg.AccessTokenExpiresAt)
		}
	})
}

func TestLoadIgnoresInvalidInts(t *testing.T) {
	envy.Temp(func() {
		envy.Set("STRAVA_MAX_ACTIVITIES", "not-a-number")
		envy.Set("STRAVA_ACTIVITY_LOOKBACK_DAYS", "-3")

		cfg := Load()
		if cfg.MaxActivities != DefaultMaxActivities {
			t.Errorf("MaxActivities = %d, want default on junk input", cfg.MaxActivities)
		}
		if cfg.LookbackDays != DefaultLookbackDays {
			t.Errorf("LookbackDays = %d, want default on negative input", cfg.LookbackDays)
		}
	})
}

func writeGoalFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goal.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGoal(t *testing.T) {
	path := writeGoalFile(t, "label: March miles\ntarget_distance_km: 100\nperiod: weekly\n")

	goal, err := LoadGoal(path)
	if err != nil {
		t.Fatalf("LoadGoal: %v", err)
	}
	if goal.Label != "March miles" || goal.TargetDistanceKm != 100 || goal.Period != GoalWeekly {
		t.Errorf("goal = %+v", goal)
	}
}

func TestLoadGoalDefaultsPeriod(t *testing.T) {
	path := writeGoalFile(t, "label: Base\ntarget_distance_km: 40\n")

	goal, err := LoadGoal(path)
	if err != nil {
		t.Fatalf("LoadGoal: %v", err)
	}
	if goal.Period != GoalMonthly {
		t.Errorf("Period = %s, want monthly default", goal.Period)
	}
}

func TestLoadGoalEmptyPath(t *testing.T) {
	goal, err := LoadGoal("")
	if err != nil || goal != nil {
		t.Errorf("LoadGoal(\"\") = %v, %v, want nil, nil", goal, err)
	}
}

func TestLoadGoalRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"missing label", "target_distance_km: 100\n"},
		{"zero target", "label: X\ntarget_distance_km: 0\n"},
		{"unknown period", "label: X\ntarget_distance_km: 10\nperiod: fortnightly\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadGoal(writeGoalFile(t, tt.contents)); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}

func TestLoadGoalMissingFile(t *testing.T) {
	if _, err := LoadGoal(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("want error for missing file")
	}
}
