package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/AshifAli007/portfolio-v4/internal/strava"
)

// activityPageSize is the provider's maximum page size. Fewer, larger pages
// keeps us further from the rate limit.
const activityPageSize = 100

// fetchActivities pages the collection endpoint, newest first, and stops as
// soon as a record predates cutoff or the accumulated count reaches max.
// The provider has no server-side date filter on this endpoint, so the
// early-exit is what bounds time and memory for long account histories.
// The combined result is re-sorted descending by start date: pages are
// assumed sorted but not guaranteed.
func (s *OverviewService) fetchActivities(ctx context.Context, cutoff time.Time, max int) ([]strava.Activity, error) {
	var results []strava.Activity

	for page := 1; len(results) < max; page++ {
		batch, err := s.api.GetActivities(ctx, page, activityPageSize)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		stop := false
		for _, act := range batch {
			if act.StartDate.Before(cutoff) {
				stop = true
				break
			}
			results = append(results, act)
			if len(results) >= max {
				stop = true
				break
			}
		}
		if stop {
			break
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].StartDate.After(results[j].StartDate)
	})
	return results, nil
}

// fetchGearDetails resolves each distinct gear id to its detail record. Gear
// is supplementary: an individual lookup failure drops that item with a
// warning instead of failing the whole overview.
func (s *OverviewService) fetchGearDetails(ctx context.Context, gearIDs []string) []strava.Gear {
	details := make([]strava.Gear, 0, len(gearIDs))
	for _, id := range gearIDs {
		gear, err := s.api.GetGear(ctx, id)
		if err != nil {
			s.logger.Warn("skipping gear detail", zap.String("gear_id", id), zap.Error(err))
			continue
		}
		details = append(details, *gear)
	}
	return details
}
