package analytics

import (
	"sort"
	"time"
)

// TimeWindow restricts the leaderboard to a trailing period.
type TimeWindow string

const (
	WindowAll     TimeWindow = "all"
	WindowWeekly  TimeWindow = "weekly"
	WindowMonthly TimeWindow = "monthly"
)

// LeaderboardSize caps the ranked result.
const LeaderboardSize = 10

// Since resolves the window to a cutoff instant. Nil means unbounded;
// unrecognized values count as "all".
func (w TimeWindow) Since(now time.Time) *time.Time {
	var cutoff time.Time
	switch w {
	case WindowWeekly:
		cutoff = now.AddDate(0, 0, -7)
	case WindowMonthly:
		cutoff = now.AddDate(0, 0, -30)
	default:
		return nil
	}
	return &cutoff
}

// LeaderboardFilter is the typed query for a leaderboard read.
// MuscleGroup matches exercise categories case-insensitively; empty means all.
type LeaderboardFilter struct {
	Window      TimeWindow
	MuscleGroup string
}

// UserVolume is one user's aggregate lifted volume within the filter.
type UserVolume struct {
	UserID        string
	Username      string
	TotalVolumeKG float64
}

// LeaderboardEntry is a ranked row. Derived on demand, never persisted.
type LeaderboardEntry struct {
	UserID        string  `json:"id"`
	Username      string  `json:"username"`
	TotalVolumeKG float64 `json:"totalVolumeKg"`
	Rank          int     `json:"rank"`
}

// RankLeaderboard orders aggregate volumes descending and assigns ranks 1..N
// by position, truncated to LeaderboardSize. Ties break on user ID ascending
// so the result is deterministic regardless of input order. Users with no
// qualifying volume are dropped.
func RankLeaderboard(volumes []UserVolume) []LeaderboardEntry {
	ranked := make([]UserVolume, 0, len(volumes))
	for _, v := range volumes {
		if v.TotalVolumeKG > 0 {
			ranked = append(ranked, v)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalVolumeKG != ranked[j].TotalVolumeKG {
			return ranked[i].TotalVolumeKG > ranked[j].TotalVolumeKG
		}
		return ranked[i].UserID < ranked[j].UserID
	})

	if len(ranked) > LeaderboardSize {
		ranked = ranked[:LeaderboardSize]
	}

	entries := make([]LeaderboardEntry, len(ranked))
	for i, v := range ranked {
		entries[i] = LeaderboardEntry{
			UserID:        v.UserID,
			Username:      v.Username,
			TotalVolumeKG: v.TotalVolumeKG,
			Rank:          i + 1,
		}
	}
	return entries
}
