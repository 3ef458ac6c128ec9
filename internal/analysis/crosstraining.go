package analysis

import (
	"sort"

	"github.com/AshifAli007/portfolio-v4/internal/fitness"
)

// CrossTraining breaks total distance down by sport type. Percentages sum to
// 100 across entries when the grand total is positive; when the working set
// has zero total distance every percentage is zero, never NaN.
func CrossTraining(activities []fitness.Activity) []fitness.CrossTrainingBreakdown {
	totals := make(map[string]*fitness.CrossTrainingBreakdown)
	var grandTotal float64

	for _, act := range activities {
		grandTotal += act.DistanceKm
		entry, ok := totals[act.SportType]
		if !ok {
			entry = &fitness.CrossTrainingBreakdown{SportType: act.SportType}
			totals[act.SportType] = entry
		}
		entry.TotalDistanceKm += act.DistanceKm
		entry.TotalMovingTimeSec += act.MovingTimeSec
		entry.ActivityCount++
	}

	out := make([]fitness.CrossTrainingBreakdown, 0, len(totals))
	for _, entry := range totals {
		if grandTotal > 0 {
			entry.Percentage = entry.TotalDistanceKm / grandTotal * 100
		}
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalDistanceKm != out[j].TotalDistanceKm {
			return out[i].TotalDistanceKm > out[j].TotalDistanceKm
		}
		return out[i].SportType < out[j].SportType
	})
	return out
}
