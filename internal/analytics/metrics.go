// Package analytics holds the pure computations of the workout engine:
// profile metrics, energy estimates, personal-record detection, streaks,
// badge rules and leaderboard ranking. Nothing in here touches storage;
// callers hand in snapshots and get decisions back.
package analytics

import "time"

// activityMultipliers maps activity level strings to their TDEE multiplier.
var activityMultipliers = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"active":    1.725,
	"athlete":   1.9,
}

// defaultActivityMultiplier applies when the stored activity level is not a
// recognized value. Fallback, not an error.
const defaultActivityMultiplier = 1.2

// ProfileInput is the physical-profile snapshot the metrics need.
// Every field is optional; missing inputs suppress the derived values.
type ProfileInput struct {
	HeightCM      *float64
	WeightKG      *float64
	Gender        *string
	DateOfBirth   *time.Time
	ActivityLevel *string
}

// ProfileMetrics carries the derived energy values. A nil field means the
// inputs required for it were incomplete.
type ProfileMetrics struct {
	BMR  *int `json:"bmr,omitempty"`
	TDEE *int `json:"tdee,omitempty"`
}

// ComputeProfileMetrics derives BMR (Mifflin-St Jeor) and TDEE from the
// profile snapshot.
//
// BMR = 10*weight + 6.25*height - 5*age + S, with S = +5 for "male" and
// -161 for anything else (unrecognized genders take the female branch).
// Age is floor(days since birth / 365), deliberately not leap-accurate,
// matching the stored-profile semantics. Both results truncate toward zero,
// and TDEE is computed from the already-truncated BMR.
func ComputeProfileMetrics(p ProfileInput, now time.Time) ProfileMetrics {
	var m ProfileMetrics

	if p.WeightKG == nil || p.HeightCM == nil || p.DateOfBirth == nil || p.Gender == nil {
		return m
	}

	ageYears := int(now.Sub(*p.DateOfBirth).Hours()/24) / 365
	s := -161.0
	if *p.Gender == "male" {
		s = 5.0
	}
	bmr := int(10.0**p.WeightKG + 6.25**p.HeightCM - 5.0*float64(ageYears) + s)
	m.BMR = &bmr

	if p.ActivityLevel == nil {
		return m
	}
	mult, ok := activityMultipliers[*p.ActivityLevel]
	if !ok {
		mult = defaultActivityMultiplier
	}
	tdee := int(float64(bmr) * mult)
	m.TDEE = &tdee

	return m
}
