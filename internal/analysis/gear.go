package analysis

import (
	"sort"

	"github.com/AshifAli007/portfolio-v4/internal/fitness"
	"github.com/AshifAli007/portfolio-v4/internal/strava"
)

// GearInsights joins fetched gear detail records against the activities that
// referenced them, yielding per-equipment distance and the sport types each
// piece was used for.
func GearInsights(gear []strava.Gear, activities []fitness.Activity) []fitness.GearInsight {
	sportsByGear := make(map[string]map[string]struct{})
	for _, act := range activities {
		if act.GearID == "" {
			continue
		}
		set, ok := sportsByGear[act.GearID]
		if !ok {
			set = make(map[string]struct{})
			sportsByGear[act.GearID] = set
		}
		set[act.SportType] = struct{}{}
	}

	insights := make([]fitness.GearInsight, 0, len(gear))
	for _, item := range gear {
		var distanceKm float64
		if item.Distance != nil {
			distanceKm = *item.Distance / 1000
		}

		sports := make([]string, 0, len(sportsByGear[item.ID]))
		for sport := range sportsByGear[item.ID] {
			sports = append(sports, sport)
		}
		sort.Strings(sports)

		insights = append(insights, fitness.GearInsight{
			ID:                item.ID,
			Name:              item.Name,
			BrandName:         item.BrandName,
			ModelName:         item.ModelName,
			DistanceKm:        distanceKm,
			ConvertedDistance: item.ConvertedDistance,
			Description:       item.Description,
			Primary:           item.Primary,
			SportTypes:        sports,
		})
	}
	return insights
}
