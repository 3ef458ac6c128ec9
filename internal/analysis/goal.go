package analysis

import (
	"math"
	"time"

	"github.com/AshifAli007/portfolio-v4/internal/config"
	"github.com/AshifAli007/portfolio-v4/internal/fitness"
)

// PercentageCap limits the reported goal percentage for display.
const PercentageCap = 200

// GoalProgress measures the configured distance target against activities
// whose start date falls within [start, target] inclusive. A nil goal yields
// nil. When the goal has no explicit dates the period is resolved implicitly:
// the current ISO week, the current calendar month, or the current year for
// custom goals.
func GoalProgress(activities []fitness.Activity, goal *config.Goal, now time.Time) *fitness.GoalProgress {
	if goal == nil {
		return nil
	}
	now = now.UTC()

	start := parseGoalDate(goal.StartDate)
	target := parseGoalDate(goal.TargetDate)

	if start.IsZero() {
		switch goal.Period {
		case config.GoalWeekly:
			start = StartOfISOWeek(now)
		case config.GoalMonthly:
			start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		default:
			start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		}
	}
	if target.IsZero() {
		switch goal.Period {
		case config.GoalWeekly:
			target = start.AddDate(0, 0, 6)
		case config.GoalMonthly:
			target = endOfMonth(start)
		default:
			target = now
		}
	}

	var current float64
	for _, act := range activities {
		d := act.StartDate.UTC()
		if d.Before(start) || d.After(target) {
			continue
		}
		current += act.DistanceKm
	}

	var pct float64
	if goal.TargetDistanceKm > 0 {
		pct = math.Min(current/goal.TargetDistanceKm*100, PercentageCap)
	}

	return &fitness.GoalProgress{
		Label:               goal.Label,
		TargetDistanceKm:    goal.TargetDistanceKm,
		Period:              string(goal.Period),
		StartDate:           start,
		TargetDate:          target,
		CurrentDistanceKm:   current,
		RemainingDistanceKm: math.Max(goal.TargetDistanceKm-current, 0),
		Percentage:          pct,
	}
}

func endOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.Add(-time.Second)
}

func parseGoalDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, dateLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
