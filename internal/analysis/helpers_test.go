package analysis

import (
	"time"

	"github.com/AshifAli007/portfolio-v4/internal/fitness"
)

var nextID int64

func act(sport string, start time.Time, km float64, movingSec int) fitness.Activity {
	nextID++
	return fitness.Activity{
		ID:            nextID,
		Name:          sport + " session",
		SportType:     sport,
		StartDate:     start,
		DistanceKm:    km,
		MovingTimeSec: movingSec,
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}
