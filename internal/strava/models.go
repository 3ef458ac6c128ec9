package strava

import "time"

// Activity is one record from /athlete/activities. It is untrusted external
// input: only the structurally required fields are plain values, everything
// the provider may omit is a pointer so "absent" stays distinguishable from
// "measured zero".
type Activity struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	SportType      string    `json:"sport_type"`
	StartDate      time.Time `json:"start_date"`
	StartDateLocal time.Time `json:"start_date_local"`
	Timezone       string    `json:"timezone"`

	Distance           *float64 `json:"distance"`    // meters
	MovingTime         *int     `json:"moving_time"` // seconds
	ElapsedTime        int      `json:"elapsed_time"`
	TotalElevationGain float64  `json:"total_elevation_gain"` // meters

	Map                  *Map     `json:"map,omitempty"`
	AverageSpeed         *float64 `json:"average_speed,omitempty"` // m/s
	MaxSpeed             *float64 `json:"max_speed,omitempty"`
	AverageHeartrate     *float64 `json:"average_heartrate,omitempty"`
	MaxHeartrate         *float64 `json:"max_heartrate,omitempty"`
	AverageWatts         *float64 `json:"average_watts,omitempty"`
	MaxWatts             *float64 `json:"max_watts,omitempty"`
	WeightedAverageWatts *float64 `json:"weighted_average_watts,omitempty"`
	SufferScore          *int     `json:"suffer_score,omitempty"`
	KudosCount           *int     `json:"kudos_count,omitempty"`
	CommentCount         *int     `json:"comment_count,omitempty"`
	AchievementCount     *int     `json:"achievement_count,omitempty"`
	PRCount              *int     `json:"pr_count,omitempty"`
	WorkoutType          *int     `json:"workout_type,omitempty"`
	GearID               *string  `json:"gear_id,omitempty"`
	Calories             *float64 `json:"calories,omitempty"`
	HasHeartrate         bool     `json:"has_heartrate"`
}

// Map carries the route polyline for an activity.
type Map struct {
	ID              string `json:"id,omitempty"`
	SummaryPolyline string `json:"summary_polyline,omitempty"`
}

// Athlete is the authenticated athlete's profile from /athlete.
type Athlete struct {
	ID                    int64    `json:"id"`
	Username              string   `json:"username,omitempty"`
	Firstname             string   `json:"firstname"`
	Lastname              string   `json:"lastname"`
	City                  string   `json:"city,omitempty"`
	Country               string   `json:"country,omitempty"`
	Bio                   string   `json:"bio,omitempty"`
	Profile               string   `json:"profile,omitempty"`
	FollowerCount         *int     `json:"follower_count,omitempty"`
	FriendCount           *int     `json:"friend_count,omitempty"`
	MeasurementPreference string   `json:"measurement_preference,omitempty"`
	Weight                *float64 `json:"weight,omitempty"`
}

// StatsTotal is one aggregate block inside athlete stats.
type StatsTotal struct {
	Count            int     `json:"count"`
	Distance         float64 `json:"distance"` // meters
	MovingTime       int     `json:"moving_time"`
	ElapsedTime      int     `json:"elapsed_time"`
	ElevationGain    float64 `json:"elevation_gain"`
	AchievementCount *int    `json:"achievement_count,omitempty"`
}

// Stats is the /athletes/{id}/stats response.
type Stats struct {
	BiggestRideDistance       *float64    `json:"biggest_ride_distance,omitempty"`
	BiggestClimbElevationGain *float64    `json:"biggest_climb_elevation_gain,omitempty"`
	RecentRideTotals          *StatsTotal `json:"recent_ride_totals,omitempty"`
	RecentRunTotals           *StatsTotal `json:"recent_run_totals,omitempty"`
	RecentSwimTotals          *StatsTotal `json:"recent_swim_totals,omitempty"`
	YTDRideTotals             *StatsTotal `json:"ytd_ride_totals,omitempty"`
	YTDRunTotals              *StatsTotal `json:"ytd_run_totals,omitempty"`
	YTDSwimTotals             *StatsTotal `json:"ytd_swim_totals,omitempty"`
	AllRideTotals             *StatsTotal `json:"all_ride_totals,omitempty"`
	AllRunTotals              *StatsTotal `json:"all_run_totals,omitempty"`
	AllSwimTotals             *StatsTotal `json:"all_swim_totals,omitempty"`
}

// Club is one entry from /athlete/clubs.
type Club struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SportType   string `json:"sport_type"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	MemberCount *int   `json:"member_count,omitempty"`
	URL         string `json:"url,omitempty"`
	Profile     string `json:"profile,omitempty"`
}

// Gear is the /gear/{id} response.
type Gear struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	ResourceState     int      `json:"resource_state,omitempty"`
	Distance          *float64 `json:"distance,omitempty"` // meters
	ConvertedDistance *float64 `json:"converted_distance,omitempty"`
	BrandName         string   `json:"brand_name,omitempty"`
	ModelName         string   `json:"model_name,omitempty"`
	Description       string   `json:"description,omitempty"`
	Primary           bool     `json:"primary"`
	Retired           bool     `json:"retired,omitempty"`
}
