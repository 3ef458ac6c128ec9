package analysis

import (
	"regexp"

	"github.com/AshifAli007/portfolio-v4/internal/fitness"
)

// raceNamePattern is the fallback matcher for accounts that never tag races.
// It is a heuristic and can both over-match ("pacing for the marathon next
// month") and under-match; entries it produces are tagged RaceHeuristic so
// callers can discount them.
var raceNamePattern = regexp.MustCompile(`(?i)race|marathon|half|10k|5k|gran fondo|event`)

// RacePortfolio selects the competitive subset of activities. Explicitly
// flagged races win; only when none exist does the name-keyword fallback run.
func RacePortfolio(activities []fitness.Activity) []fitness.RaceEntry {
	var flagged []fitness.RaceEntry
	for _, act := range activities {
		if act.IsRace {
			flagged = append(flagged, fitness.RaceEntry{Activity: act, Provenance: fitness.RaceFlagged})
		}
	}
	if len(flagged) > 0 {
		return flagged
	}

	var matched []fitness.RaceEntry
	for _, act := range activities {
		if raceNamePattern.MatchString(act.Name) {
			matched = append(matched, fitness.RaceEntry{Activity: act, Provenance: fitness.RaceHeuristic})
		}
	}
	return matched
}
