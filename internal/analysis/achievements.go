package analysis

import (
	"fmt"
	"math"

	"github.com/AshifAli007/portfolio-v4/internal/fitness"
	"github.com/AshifAli007/portfolio-v4/internal/strava"
)

// Display conversions for highlight descriptions.
const (
	kmToMiles     = 0.621371
	metersToFeet  = 3.28084
	metersToMiles = kmToMiles / 1000
)

// Achievements computes each highlight category independently: longest ride,
// longest run, biggest single-activity climb, and 4-week ride volume. A
// category with no qualifying data is omitted, never a placeholder.
func Achievements(activities []fitness.Activity, stats *strava.Stats) []fitness.AchievementHighlight {
	var highlights []fitness.AchievementHighlight

	if ride := longestBySport(activities, "Ride"); ride != nil {
		highlights = append(highlights, fitness.AchievementHighlight{
			Label:       "Longest Ride",
			Description: fmt.Sprintf("%.1f mi • %s", ride.DistanceKm*kmToMiles, ride.Name),
			ActivityID:  ride.ID,
		})
	}

	if run := longestBySport(activities, "Run"); run != nil {
		highlights = append(highlights, fitness.AchievementHighlight{
			Label:       "Longest Run",
			Description: fmt.Sprintf("%.1f mi • %s", run.DistanceKm*kmToMiles, run.Name),
			ActivityID:  run.ID,
		})
	}

	if stats != nil && stats.BiggestClimbElevationGain != nil && *stats.BiggestClimbElevationGain > 0 {
		highlights = append(highlights, fitness.AchievementHighlight{
			Label:       "Biggest Climb",
			Description: fmt.Sprintf("%d ft elevation in a single activity", int(math.Round(*stats.BiggestClimbElevationGain*metersToFeet))),
		})
	}

	if stats != nil && stats.RecentRideTotals != nil && stats.RecentRideTotals.Distance > 0 {
		highlights = append(highlights, fitness.AchievementHighlight{
			Label:       "Ride Volume (4w)",
			Description: fmt.Sprintf("%.1f mi in the last 4 weeks", stats.RecentRideTotals.Distance*metersToMiles),
		})
	}

	return highlights
}

func longestBySport(activities []fitness.Activity, sportType string) *fitness.Activity {
	var longest *fitness.Activity
	for i := range activities {
		act := &activities[i]
		if act.SportType != sportType {
			continue
		}
		if longest == nil || act.DistanceKm > longest.DistanceKm {
			longest = act
		}
	}
	return longest
}
