package fitness

import (
	"fmt"
	"math"

	"github.com/AshifAli007/portfolio-v4/internal/strava"
)

// MalformedRecordError reports a provider record missing a structurally
// required field. Optional fields never trigger it.
type MalformedRecordError struct {
	ActivityID int64
	Field      string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed activity record %d: missing %s", e.ActivityID, e.Field)
}

// Normalize maps one raw provider record into the canonical shape. It fails
// only when a structurally required field (id, name, start date, distance,
// moving time) is absent; every optional field tolerates absence.
func Normalize(raw strava.Activity) (Activity, error) {
	switch {
	case raw.ID == 0:
		return Activity{}, &MalformedRecordError{ActivityID: raw.ID, Field: "id"}
	case raw.Name == "":
		return Activity{}, &MalformedRecordError{ActivityID: raw.ID, Field: "name"}
	case raw.StartDate.IsZero():
		return Activity{}, &MalformedRecordError{ActivityID: raw.ID, Field: "start_date"}
	case raw.Distance == nil:
		return Activity{}, &MalformedRecordError{ActivityID: raw.ID, Field: "distance"}
	case raw.MovingTime == nil:
		return Activity{}, &MalformedRecordError{ActivityID: raw.ID, Field: "moving_time"}
	}

	sportType := raw.SportType
	if sportType == "" {
		sportType = raw.Type
	}
	if sportType == "" {
		sportType = "Other"
	}

	distanceKm := *raw.Distance / 1000

	act := Activity{
		ID:               raw.ID,
		Name:             raw.Name,
		SportType:        sportType,
		StartDate:        raw.StartDate,
		StartDateLocal:   raw.StartDateLocal,
		DistanceKm:       distanceKm,
		MovingTimeSec:    *raw.MovingTime,
		ElapsedTimeSec:   raw.ElapsedTime,
		ElevationGainM:   raw.TotalElevationGain,
		AverageSpeedMps:  raw.AverageSpeed,
		AverageHeartrate: raw.AverageHeartrate,
		MaxHeartrate:     raw.MaxHeartrate,
		KudosCount:       raw.KudosCount,
		IsRace:           isRace(raw, sportType),
		ExternalURL:      fmt.Sprintf("https://www.strava.com/activities/%d", raw.ID),
		Calories:         raw.Calories,
	}

	// Pace is derived, and only meaningful for runs with real distance.
	if sportType == "Run" && distanceKm > 0 {
		pace := int(math.Round(float64(*raw.MovingTime) / distanceKm))
		act.AveragePaceSecPerKm = &pace
	}

	if raw.AchievementCount != nil {
		act.AchievementCount = raw.AchievementCount
	} else if raw.PRCount != nil {
		act.AchievementCount = raw.PRCount
	}

	if raw.Map != nil {
		act.MapPolyline = raw.Map.SummaryPolyline
	}
	if raw.GearID != nil {
		act.GearID = *raw.GearID
	}

	return act, nil
}

// isRace mirrors the provider's workout-type flag: runs marked with
// workout_type 1 are races.
func isRace(raw strava.Activity, sportType string) bool {
	if raw.WorkoutType == nil {
		return false
	}
	return (sportType == "Run" || raw.Type == "Run") && *raw.WorkoutType == 1
}
