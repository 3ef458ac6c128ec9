package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gobuffalo/envy"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultCacheTTLSeconds = 600
	DefaultLookbackDays    = 180
	DefaultMaxActivities   = 200
	DefaultListenAddr      = ":8080"
)

// Config holds everything the activity engine consumes. It is read once at
// process start; the engine never touches the environment afterwards.
type Config struct {
	// OAuth application credentials.
	ClientID     string
	ClientSecret string

	// Seed tokens. At least one of RefreshToken/AccessToken is required for
	// the integration to count as configured.
	RefreshToken         string
	AccessToken          string
	AccessTokenExpiresAt time.Time // zero when unknown

	CacheTTL      time.Duration
	LookbackDays  int
	MaxActivities int

	// Optional extras.
	GoalFile     string // YAML goal definition, empty disables the goal view
	TokenDBPath  string // sqlite token store, empty keeps tokens in memory only
	WarmSchedule string // cron spec for background cache warming, empty disables
	ListenAddr   string
}

// Load reads configuration from the environment, applying defaults for
// anything unset. It never fails on missing credentials; use Configured to
// decide whether the integration is usable.
func Load() Config {
	cfg := Config{
		ClientID:      envy.Get("STRAVA_CLIENT_ID", ""),
		ClientSecret:  envy.Get("STRAVA_CLIENT_SECRET", ""),
		RefreshToken:  envy.Get("STRAVA_REFRESH_TOKEN", ""),
		AccessToken:   envy.Get("STRAVA_ACCESS_TOKEN", ""),
		CacheTTL:      time.Duration(intEnv("STRAVA_CACHE_TTL_SECONDS", DefaultCacheTTLSeconds)) * time.Second,
		LookbackDays:  intEnv("STRAVA_ACTIVITY_LOOKBACK_DAYS", DefaultLookbackDays),
		MaxActivities: intEnv("STRAVA_MAX_ACTIVITIES", DefaultMaxActivities),
		GoalFile:      envy.Get("STRAVA_GOAL_FILE", ""),
		TokenDBPath:   envy.Get("STRAVA_TOKEN_DB", ""),
		WarmSchedule:  envy.Get("STRAVA_WARM_SCHEDULE", ""),
		ListenAddr:    envy.Get("LISTEN_ADDR", DefaultListenAddr),
	}

	if raw := envy.Get("STRAVA_ACCESS_TOKEN_EXPIRES_AT", ""); raw != "" {
		if epoch, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.AccessTokenExpiresAt = time.Unix(epoch, 0)
		}
	}

	return cfg
}

// Configured reports whether the Strava integration has enough credentials
// to make any upstream call: client id+secret and at least one token.
func (c Config) Configured() bool {
	if c.ClientID == "" || c.ClientSecret == "" {
		return false
	}
	return c.RefreshToken != "" || c.AccessToken != ""
}

func intEnv(key string, fallback int) int {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// GoalPeriod is the window a distance goal is measured over.
type GoalPeriod string

const (
	GoalWeekly  GoalPeriod = "weekly"
	GoalMonthly GoalPeriod = "monthly"
	GoalCustom  GoalPeriod = "custom"
)

// Goal is a statically configured distance target.
type Goal struct {
	Label            string     `yaml:"label"`
	TargetDistanceKm float64    `yaml:"target_distance_km"`
	Period           GoalPeriod `yaml:"period"`
	StartDate        string     `yaml:"start_date,omitempty"`  // RFC 3339 or YYYY-MM-DD
	TargetDate       string     `yaml:"target_date,omitempty"` // RFC 3339 or YYYY-MM-DD
}

// LoadGoal parses the YAML goal file at path. An empty path means no goal is
// configured and returns (nil, nil).
func LoadGoal(path string) (*Goal, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading goal file: %w", err)
	}

	var goal Goal
	if err := yaml.Unmarshal(data, &goal); err != nil {
		return nil, fmt.Errorf("parsing goal file: %w", err)
	}

	if goal.Label == "" || goal.TargetDistanceKm <= 0 {
		return nil, fmt.Errorf("goal file %s: label and a positive target_distance_km are required", path)
	}
	switch goal.Period {
	case GoalWeekly, GoalMonthly, GoalCustom:
	case "":
		goal.Period = GoalMonthly
	default:
		return nil, fmt.Errorf("goal file %s: unknown period %q", path, goal.Period)
	}

	return &goal, nil
}
