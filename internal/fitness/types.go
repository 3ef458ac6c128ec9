// Package fitness defines the canonical activity shape the engine works
// with, independent of the upstream provider's field names and units, plus
// the derived views assembled into an overview.
package fitness

import (
	"time"

	"github.com/AshifAli007/portfolio-v4/internal/strava"
)

// Activity is one normalized exercise session. Instances are created fresh
// on every normalization pass and never mutated afterwards. Pointer fields
// are absent when the provider didn't report the metric; absence is not the
// same as a measured zero.
type Activity struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	SportType           string    `json:"sportType"`
	StartDate           time.Time `json:"startDate"`
	StartDateLocal      time.Time `json:"startDateLocal"`
	DistanceKm          float64   `json:"distanceKm"`
	MovingTimeSec       int       `json:"movingTimeSec"`
	ElapsedTimeSec      int       `json:"elapsedTimeSec"`
	ElevationGainM      float64   `json:"elevationGainM"`
	AverageSpeedMps     *float64  `json:"averageSpeedMps,omitempty"`
	AveragePaceSecPerKm *int      `json:"averagePaceSecPerKm,omitempty"`
	AverageHeartrate    *float64  `json:"averageHeartrate,omitempty"`
	MaxHeartrate        *float64  `json:"maxHeartrate,omitempty"`
	KudosCount          *int      `json:"kudosCount,omitempty"`
	AchievementCount    *int      `json:"achievementCount,omitempty"`
	MapPolyline         string    `json:"mapPolyline,omitempty"`
	IsRace              bool      `json:"isRace"`
	GearID              string    `json:"gearId,omitempty"`
	ExternalURL         string    `json:"externalUrl"`
	Calories            *float64  `json:"calories,omitempty"`
}

// TrendPoint aggregates one ISO week (Monday start, UTC).
type TrendPoint struct {
	WeekStart           string  `json:"weekStart"` // YYYY-MM-DD
	TotalDistanceKm     float64 `json:"totalDistanceKm"`
	TotalMovingTimeSec  int     `json:"totalMovingTimeSec"`
	TotalElevationGainM float64 `json:"totalElevationGainM"`
	ActivityCount       int     `json:"activityCount"`
}

// TrainingDay aggregates one calendar day (UTC) for the heatmap.
type TrainingDay struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	DistanceKm    float64 `json:"distanceKm"`
	MovingTimeSec int     `json:"movingTimeSec"`
	ActivityCount int     `json:"activityCount"`
}

// CrossTrainingBreakdown is one sport type's share of total distance.
type CrossTrainingBreakdown struct {
	SportType          string  `json:"sportType"`
	TotalDistanceKm    float64 `json:"totalDistanceKm"`
	TotalMovingTimeSec int     `json:"totalMovingTimeSec"`
	ActivityCount      int     `json:"activityCount"`
	Percentage         float64 `json:"percentage"`
}

// AchievementHighlight is one curated standout entry. Categories with no
// qualifying data are simply omitted from the list.
type AchievementHighlight struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	ActivityID  int64  `json:"activityId,omitempty"`
}

// GoalProgress reports completion of the configured distance target.
type GoalProgress struct {
	Label               string    `json:"label"`
	TargetDistanceKm    float64   `json:"targetDistanceKm"`
	Period              string    `json:"period"`
	StartDate           time.Time `json:"startDate"`
	TargetDate          time.Time `json:"targetDate"`
	CurrentDistanceKm   float64   `json:"currentDistanceKm"`
	RemainingDistanceKm float64   `json:"remainingDistanceKm"`
	Percentage          float64   `json:"percentage"` // capped at 200 for display
}

// RaceProvenance records how a race-portfolio entry was identified.
type RaceProvenance string

const (
	// RaceFlagged means the provider explicitly marked the activity a race.
	RaceFlagged RaceProvenance = "flagged"
	// RaceHeuristic means the entry matched the name-keyword fallback. The
	// fallback can both over- and under-match; treat it accordingly.
	RaceHeuristic RaceProvenance = "heuristic"
)

// RaceEntry is one activity in the race portfolio with its provenance.
type RaceEntry struct {
	Activity   Activity       `json:"activity"`
	Provenance RaceProvenance `json:"provenance"`
}

// ClubSummary is one club in the community snapshot.
type ClubSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SportType   string `json:"sportType"`
	MemberCount *int   `json:"memberCount,omitempty"`
	URL         string `json:"url,omitempty"`
}

// CommunitySnapshot summarizes social engagement across the working set.
type CommunitySnapshot struct {
	KudosReceived    int           `json:"kudosReceived"`
	CommentsReceived int           `json:"commentsReceived"`
	ActivityCount    int           `json:"activityCount"`
	ClubCount        int           `json:"clubCount"`
	TopClubs         []ClubSummary `json:"topClubs"`
}

// GearInsight is per-equipment usage derived by joining activities' gear ids
// against fetched gear detail records.
type GearInsight struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	BrandName         string   `json:"brandName,omitempty"`
	ModelName         string   `json:"modelName,omitempty"`
	DistanceKm        float64  `json:"distanceKm"`
	ConvertedDistance *float64 `json:"convertedDistanceKm,omitempty"`
	Description       string   `json:"description,omitempty"`
	Primary           bool     `json:"primary"`
	SportTypes        []string `json:"sportTypes"`
}

// RateLimitInfo is the last-observed upstream rate limit usage, stamped on
// the overview for observability.
type RateLimitInfo struct {
	Usage string `json:"usage,omitempty"`
	Limit string `json:"limit,omitempty"`
}

// Overview is the fully assembled response object.
type Overview struct {
	Athlete           *strava.Athlete          `json:"athlete"`
	SpotlightActivity *Activity                `json:"spotlightActivity"`
	RecentActivities  []Activity               `json:"recentActivities"`
	WeeklyTrends      []TrendPoint             `json:"weeklyTrends"`
	TrainingHeatmap   []TrainingDay            `json:"trainingHeatmap"`
	CrossTraining     []CrossTrainingBreakdown `json:"crossTraining"`
	Achievements      []AchievementHighlight   `json:"achievements"`
	Goal              *GoalProgress            `json:"goal"`
	Community         CommunitySnapshot        `json:"community"`
	RacePortfolio     []RaceEntry              `json:"racePortfolio"`
	GearInsights      []GearInsight            `json:"gearInsights"`
	Stats             *strava.Stats            `json:"stats"`
	GeneratedAt       time.Time                `json:"generatedAt"`
	RateLimit         RateLimitInfo            `json:"rateLimit"`
}
