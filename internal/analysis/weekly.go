// Package analysis contains the pure aggregation functions that turn a
// normalized activity list (plus profile/stats/club/gear side inputs) into
// the derived overview views. Nothing here performs I/O.
package analysis

import (
	"sort"
	"time"

	"github.com/AshifAli007/portfolio-v4/internal/fitness"
)

const dateLayout = "2006-01-02"

// StartOfISOWeek returns 00:00 UTC on the Monday of t's ISO week. All week
// bucketing runs in UTC to avoid drift between server and athlete locale.
func StartOfISOWeek(t time.Time) time.Time {
	t = t.UTC()
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7 // days since Monday
	return d.AddDate(0, 0, -offset)
}

// WeeklyTrends buckets activities by ISO week (Monday start) and aggregates
// distance, moving time, elevation, and count per bucket. The result is
// sorted ascending by week.
func WeeklyTrends(activities []fitness.Activity) []fitness.TrendPoint {
	buckets := make(map[string]*fitness.TrendPoint)

	for _, act := range activities {
		week := StartOfISOWeek(act.StartDate).Format(dateLayout)
		bucket, ok := buckets[week]
		if !ok {
			bucket = &fitness.TrendPoint{WeekStart: week}
			buckets[week] = bucket
		}
		bucket.TotalDistanceKm += act.DistanceKm
		bucket.TotalMovingTimeSec += act.MovingTimeSec
		bucket.TotalElevationGainM += act.ElevationGainM
		bucket.ActivityCount++
	}

	trends := make([]fitness.TrendPoint, 0, len(buckets))
	for _, bucket := range buckets {
		trends = append(trends, *bucket)
	}
	sort.Slice(trends, func(i, j int) bool {
		return trends[i].WeekStart < trends[j].WeekStart
	})
	return trends
}
