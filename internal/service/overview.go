// Package service composes the token manager, API client, cache, and
// aggregation functions into the engine's two public operations: list
// normalized activities and build the full overview.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AshifAli007/portfolio-v4/internal/analysis"
	"github.com/AshifAli007/portfolio-v4/internal/cache"
	"github.com/AshifAli007/portfolio-v4/internal/config"
	"github.com/AshifAli007/portfolio-v4/internal/fitness"
	"github.com/AshifAli007/portfolio-v4/internal/strava"
)

// Cache keys for the two public operations.
const (
	activitiesCacheKey = "strava:activities"
	overviewCacheKey   = "strava:overview"
)

// Overview display caps, mirroring what the consuming site renders.
const (
	recentActivityCount = 6
	weeklyTrendWeeks    = 12
	heatmapMaxDays      = 365
	racePortfolioMax    = 10
)

// API is the slice of the Strava client the service depends on. *strava.Client
// satisfies it; tests substitute stubs.
type API interface {
	GetAthlete(ctx context.Context) (*strava.Athlete, error)
	GetActivities(ctx context.Context, page, perPage int) ([]strava.Activity, error)
	GetAthleteStats(ctx context.Context, athleteID int64) (*strava.Stats, error)
	GetClubs(ctx context.Context) ([]strava.Club, error)
	GetGear(ctx context.Context, gearID string) (*strava.Gear, error)
	RateLimit() strava.RateLimit
}

// OverviewService is the overview orchestrator. All mutable shared state
// lives in the injected cache and the token manager behind the API; the
// service itself is safe for concurrent use.
type OverviewService struct {
	api    API
	cache  *cache.Cache
	cfg    config.Config
	goal   *config.Goal
	logger *zap.Logger
	now    func() time.Time
}

// NewOverviewService wires the orchestrator. goal may be nil when no
// distance target is configured.
func NewOverviewService(api API, c *cache.Cache, cfg config.Config, goal *config.Goal, logger *zap.Logger) *OverviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverviewService{
		api:    api,
		cache:  c,
		cfg:    cfg,
		goal:   goal,
		logger: logger,
		now:    time.Now,
	}
}

// ListActivities returns the normalized activity list, cached for the
// configured TTL. force evicts the cached list before recomputing so the
// caller never gets pre-refresh data past the explicit refresh point.
func (s *OverviewService) ListActivities(ctx context.Context, force bool) ([]fitness.Activity, error) {
	if !s.cfg.Configured() {
		return nil, strava.ErrNotConfigured
	}

	if force {
		s.cache.Clear(activitiesCacheKey)
	} else if cached, ok := cache.Get[[]fitness.Activity](s.cache, activitiesCacheKey); ok {
		return cached, nil
	}

	raw, err := s.fetchActivities(ctx, s.lookbackCutoff(), s.cfg.MaxActivities)
	if err != nil {
		return nil, fmt.Errorf("fetching activities: %w", err)
	}

	normalized, err := normalizeAll(raw)
	if err != nil {
		return nil, err
	}

	s.cache.Set(activitiesCacheKey, normalized, s.cfg.CacheTTL)
	return normalized, nil
}

// GetOverview returns the fully assembled overview, cached for the
// configured TTL. On a miss it fetches profile and activities in parallel,
// then stats and clubs in parallel once the athlete id is known, then gear
// details per distinct gear id.
func (s *OverviewService) GetOverview(ctx context.Context, force bool) (*fitness.Overview, error) {
	if !s.cfg.Configured() {
		return nil, strava.ErrNotConfigured
	}

	if force {
		s.cache.Clear(overviewCacheKey)
	} else if cached, ok := cache.Get[*fitness.Overview](s.cache, overviewCacheKey); ok {
		return cached, nil
	}

	var (
		athlete *strava.Athlete
		raw     []strava.Activity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		athlete, err = s.api.GetAthlete(gctx)
		if err != nil {
			return fmt.Errorf("fetching athlete: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		raw, err = s.fetchActivities(gctx, s.lookbackCutoff(), s.cfg.MaxActivities)
		if err != nil {
			return fmt.Errorf("fetching activities: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	normalized, err := normalizeAll(raw)
	if err != nil {
		return nil, err
	}

	var (
		stats *strava.Stats
		clubs []strava.Club
	)
	g, gctx = errgroup.WithContext(ctx)
	if athlete.ID != 0 {
		g.Go(func() error {
			var err error
			stats, err = s.api.GetAthleteStats(gctx, athlete.ID)
			if err != nil {
				return fmt.Errorf("fetching athlete stats: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		clubs, err = s.api.GetClubs(gctx)
		if err != nil {
			return fmt.Errorf("fetching clubs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	gearDetails := s.fetchGearDetails(ctx, distinctGearIDs(normalized))

	now := s.now()
	overview := &fitness.Overview{
		Athlete:          athlete,
		RecentActivities: head(normalized, recentActivityCount),
		WeeklyTrends:     tail(analysis.WeeklyTrends(normalized), weeklyTrendWeeks),
		TrainingHeatmap:  tail(analysis.Heatmap(normalized, s.cfg.LookbackDays, now), heatmapMaxDays),
		CrossTraining:    analysis.CrossTraining(normalized),
		Achievements:     analysis.Achievements(normalized, stats),
		Goal:             analysis.GoalProgress(normalized, s.goal, now),
		Community:        analysis.Community(normalized, clubs),
		RacePortfolio:    head(analysis.RacePortfolio(normalized), racePortfolioMax),
		GearInsights:     analysis.GearInsights(gearDetails, normalized),
		Stats:            stats,
		GeneratedAt:      now,
	}
	if len(normalized) > 0 {
		overview.SpotlightActivity = &normalized[0]
	}

	limit := s.api.RateLimit()
	overview.RateLimit = fitness.RateLimitInfo{Usage: limit.Usage, Limit: limit.Limit}

	s.cache.Set(overviewCacheKey, overview, s.cfg.CacheTTL)
	return overview, nil
}

func (s *OverviewService) lookbackCutoff() time.Time {
	return s.now().Add(-time.Duration(s.cfg.LookbackDays) * 24 * time.Hour)
}

func normalizeAll(raw []strava.Activity) ([]fitness.Activity, error) {
	normalized := make([]fitness.Activity, 0, len(raw))
	for _, r := range raw {
		act, err := fitness.Normalize(r)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, act)
	}
	return normalized, nil
}

func distinctGearIDs(activities []fitness.Activity) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, act := range activities {
		if act.GearID == "" {
			continue
		}
		if _, ok := seen[act.GearID]; ok {
			continue
		}
		seen[act.GearID] = struct{}{}
		ids = append(ids, act.GearID)
	}
	return ids
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func tail[T any](items []T, n int) []T {
	if len(items) > n {
		return items[len(items)-n:]
	}
	return items
}
