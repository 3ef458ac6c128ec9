package analysis

import (
	"sort"
	"time"

	"github.com/AshifAli007/portfolio-v4/internal/fitness"
)

// Heatmap buckets activities inside the lookback window by UTC calendar day,
// merging multiple same-day activities into one entry. The result is sorted
// ascending by date.
func Heatmap(activities []fitness.Activity, lookbackDays int, now time.Time) []fitness.TrainingDay {
	cutoff := now.Add(-time.Duration(lookbackDays) * 24 * time.Hour)
	days := make(map[string]*fitness.TrainingDay)

	for _, act := range activities {
		if act.StartDate.Before(cutoff) {
			continue
		}
		key := act.StartDate.UTC().Format(dateLayout)
		day, ok := days[key]
		if !ok {
			day = &fitness.TrainingDay{Date: key}
			days[key] = day
		}
		day.DistanceKm += act.DistanceKm
		day.MovingTimeSec += act.MovingTimeSec
		day.ActivityCount++
	}

	out := make([]fitness.TrainingDay, 0, len(days))
	for _, day := range days {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
