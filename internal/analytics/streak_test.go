package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestComputeStreaksGapResetsRun(t *testing.T) {
	// Mon, Tue, Wed, (gap), Fri; today is Fri.
	dates := []time.Time{
		day(t, "2026-03-02"),
		day(t, "2026-03-03"),
		day(t, "2026-03-04"),
		day(t, "2026-03-06"),
	}

	s := ComputeStreaks(dates, day(t, "2026-03-06"))
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 3, s.Max)
}

func TestComputeStreaksStaleHistoryZeroesCurrent(t *testing.T) {
	// Mon, Tue; today is Thu. Streak is broken but the max survives.
	dates := []time.Time{
		day(t, "2026-03-02"),
		day(t, "2026-03-03"),
	}

	s := ComputeStreaks(dates, day(t, "2026-03-05"))
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, 2, s.Max)
}

func TestComputeStreaksYesterdayStillCounts(t *testing.T) {
	dates := []time.Time{
		day(t, "2026-03-02"),
		day(t, "2026-03-03"),
		day(t, "2026-03-04"),
	}

	// Last active yesterday: streak is alive.
	s := ComputeStreaks(dates, day(t, "2026-03-05"))
	assert.Equal(t, 3, s.Current)
	assert.Equal(t, 3, s.Max)
}

func TestComputeStreaksEmpty(t *testing.T) {
	s := ComputeStreaks(nil, day(t, "2026-03-05"))
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, 0, s.Max)
}

func TestComputeStreaksSingleDayToday(t *testing.T) {
	s := ComputeStreaks([]time.Time{day(t, "2026-03-05")}, day(t, "2026-03-05"))
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 1, s.Max)
}

func TestComputeStreaksLongestRunInMiddle(t *testing.T) {
	dates := []time.Time{
		day(t, "2026-02-01"),
		day(t, "2026-02-02"),
		day(t, "2026-02-03"),
		day(t, "2026-02-04"),
		day(t, "2026-02-10"),
		day(t, "2026-02-11"),
	}

	s := ComputeStreaks(dates, day(t, "2026-02-11"))
	assert.Equal(t, 2, s.Current)
	assert.Equal(t, 4, s.Max)
}
