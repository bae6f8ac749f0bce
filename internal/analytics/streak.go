package analytics

import "time"

// StreakLookbackDays bounds the active-date window fed into ComputeStreaks.
const StreakLookbackDays = 365

// Streaks holds consecutive-training-day counters.
type Streaks struct {
	Current int `json:"currentStreak"`
	Max     int `json:"maxStreak"`
}

// ComputeStreaks walks a user's active calendar dates (days with at least one
// logged set) and returns the current and the longest streak. Input dates
// must be deduplicated, normalized to midnight and sorted ascending; today
// must be normalized the same way.
//
// Consecutive dates extend the running streak, any gap resets it to 1, and
// the running value only counts as the current streak when the most recent
// active date is today or yesterday; otherwise the streak is broken and
// current is 0.
func ComputeStreaks(activeDates []time.Time, today time.Time) Streaks {
	if len(activeDates) == 0 {
		return Streaks{}
	}

	run := 1
	max := 1
	for i := 1; i < len(activeDates); i++ {
		if daysBetween(activeDates[i-1], activeDates[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > max {
			max = run
		}
	}

	current := 0
	if daysBetween(activeDates[len(activeDates)-1], today) <= 1 {
		current = run
	}

	return Streaks{Current: current, Max: max}
}

// daysBetween returns whole days from a to b; both are expected at midnight.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
