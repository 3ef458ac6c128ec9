package analysis

import (
	"sort"

	"github.com/AshifAli007/portfolio-v4/internal/fitness"
	"github.com/AshifAli007/portfolio-v4/internal/strava"
)

// topClubCount caps how many clubs the snapshot carries.
const topClubCount = 4

// Community summarizes social engagement: kudos/comment totals across the
// working set plus the athlete's biggest clubs by member count.
//
// The comments total is approximated from per-activity achievement counts;
// the collection endpoint doesn't return comment counts on every record.
func Community(activities []fitness.Activity, clubs []strava.Club) fitness.CommunitySnapshot {
	snapshot := fitness.CommunitySnapshot{
		ActivityCount: len(activities),
		ClubCount:     len(clubs),
		TopClubs:      []fitness.ClubSummary{},
	}

	for _, act := range activities {
		if act.KudosCount != nil {
			snapshot.KudosReceived += *act.KudosCount
		}
		if act.AchievementCount != nil {
			snapshot.CommentsReceived += *act.AchievementCount
		}
	}

	summaries := make([]fitness.ClubSummary, 0, len(clubs))
	for _, club := range clubs {
		summaries = append(summaries, fitness.ClubSummary{
			ID:          club.ID,
			Name:        club.Name,
			SportType:   club.SportType,
			MemberCount: club.MemberCount,
			URL:         club.URL,
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return memberCount(summaries[i]) > memberCount(summaries[j])
	})
	if len(summaries) > topClubCount {
		summaries = summaries[:topClubCount]
	}
	snapshot.TopClubs = summaries

	return snapshot
}

func memberCount(c fitness.ClubSummary) int {
	if c.MemberCount == nil {
		return 0
	}
	return *c.MemberCount
}
