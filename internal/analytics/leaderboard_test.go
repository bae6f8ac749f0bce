package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankLeaderboardOrderAndRanks(t *testing.T) {
	entries := RankLeaderboard([]UserVolume{
		{UserID: "b", Username: "bob", TotalVolumeKG: 5000},
		{UserID: "a", Username: "alice", TotalVolumeKG: 9000},
		{UserID: "c", Username: "carol", TotalVolumeKG: 7000},
	})

	require.Len(t, entries, 3)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "carol", entries[1].Username)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "bob", entries[2].Username)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestRankLeaderboardTieBreaksOnUserID(t *testing.T) {
	// Equal volume: user ID ascending decides, regardless of input order.
	entries := RankLeaderboard([]UserVolume{
		{UserID: "zeta", Username: "zoe", TotalVolumeKG: 5000},
		{UserID: "alpha", Username: "al", TotalVolumeKG: 5000},
	})

	require.Len(t, entries, 2)
	assert.Equal(t, "alpha", entries[0].UserID)
	assert.Equal(t, "zeta", entries[1].UserID)
}

func TestRankLeaderboardDropsZeroVolume(t *testing.T) {
	entries := RankLeaderboard([]UserVolume{
		{UserID: "a", Username: "alice", TotalVolumeKG: 100},
		{UserID: "b", Username: "bob", TotalVolumeKG: 0},
	})

	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
}

func TestRankLeaderboardTruncatesToTopTen(t *testing.T) {
	var volumes []UserVolume
	for i := 0; i < 15; i++ {
		volumes = append(volumes, UserVolume{
			UserID:        fmt.Sprintf("user-%02d", i),
			TotalVolumeKG: float64(100 * (i + 1)),
		})
	}

	entries := RankLeaderboard(volumes)
	require.Len(t, entries, LeaderboardSize)
	assert.Equal(t, "user-14", entries[0].UserID) // heaviest lifter first
	assert.Equal(t, 10, entries[9].Rank)
}

func TestRankLeaderboardEmpty(t *testing.T) {
	assert.Empty(t, RankLeaderboard(nil))
}

func TestTimeWindowSince(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Nil(t, WindowAll.Since(now))
	assert.Nil(t, TimeWindow("bogus").Since(now))

	weekly := WindowWeekly.Since(now)
	require.NotNil(t, weekly)
	assert.Equal(t, now.AddDate(0, 0, -7), *weekly)

	monthly := WindowMonthly.Since(now)
	require.NotNil(t, monthly)
	assert.Equal(t, now.AddDate(0, 0, -30), *monthly)
}
