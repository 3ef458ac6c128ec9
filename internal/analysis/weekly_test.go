package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/AshifAli007/portfolio-v4/internal/fitness"
)

func TestStartOfISOWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{name: "monday maps to itself", in: time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC), want: "2026-03-02"},
		{name: "sunday maps to previous monday", in: time.Date(2026, 3, 8, 1, 0, 0, 0, time.UTC), want: "2026-03-02"},
		{name: "wednesday maps back", in: time.Date(2026, 3, 4, 23, 59, 0, 0, time.UTC), want: "2026-03-02"},
		{name: "year boundary", in: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), want: "2025-12-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfISOWeek(tt.in).Format(dateLayout); got != tt.want {
				t.Errorf("StartOfISOWeek(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestWeeklyTrendsSingleWeekFixture(t *testing.T) {
	// Two runs and a ride inside the same ISO week (Mon 2026-03-02).
	activities := []fitness.Activity{
		act("Run", date(2026, 3, 2), 5, 1500),
		act("Run", date(2026, 3, 4), 10, 3000),
		act("Ride", date(2026, 3, 6), 20, 3600),
	}

	trends := WeeklyTrends(activities)
	if len(trends) != 1 {
		t.Fatalf("len(trends) = %d, want 1", len(trends))
	}

	week := trends[0]
	if week.WeekStart != "2026-03-02" {
		t.Errorf("WeekStart = %s, want 2026-03-02", week.WeekStart)
	}
	if math.Abs(week.TotalDistanceKm-35) > 1e-9 {
		t.Errorf("TotalDistanceKm = %v, want 35", week.TotalDistanceKm)
	}
	if week.ActivityCount != 3 {
		t.Errorf("ActivityCount = %d, want 3", week.ActivityCount)
	}
	if week.TotalMovingTimeSec != 8100 {
		t.Errorf("TotalMovingTimeSec = %d, want 8100", week.TotalMovingTimeSec)
	}
}

func TestWeeklyTrendsBucketsAndSorts(t *testing.T) {
	activities := []fitness.Activity{
		act("Run", date(2026, 3, 9), 8, 2400), // later week, listed first
		act("Run", date(2026, 3, 2), 5, 1500),
		act("Ride", date(2026, 3, 11), 30, 5400),
	}

	trends := WeeklyTrends(activities)
	if len(trends) != 2 {
		t.Fatalf("len(trends) = %d, want 2", len(trends))
	}
	if trends[0].WeekStart != "2026-03-02" || trends[1].WeekStart != "2026-03-09" {
		t.Errorf("weeks = [%s, %s], want ascending", trends[0].WeekStart, trends[1].WeekStart)
	}
	if trends[1].ActivityCount != 2 {
		t.Errorf("second week ActivityCount = %d, want 2", trends[1].ActivityCount)
	}
}

func TestWeeklyTrendsEmpty(t *testing.T) {
	if trends := WeeklyTrends(nil); len(trends) != 0 {
		t.Errorf("len = %d, want 0", len(trends))
	}
}
