package analytics

import (
	"math"
	"time"
)

const (
	// DefaultBodyWeightKG is assumed when the user never logged a weight.
	DefaultBodyWeightKG = 75.0
	// DefaultDurationMinutes is assumed when the workout has no start time.
	DefaultDurationMinutes = 60.0

	metFloor = 3.0 // light effort
	metCeil  = 8.0 // extreme effort
)

// EnergyInput is the finished-workout snapshot the estimator needs.
type EnergyInput struct {
	StartTime     *time.Time
	EndTime       time.Time
	TotalVolumeKG float64
	BodyWeightKG  *float64
}

// EnergyEstimate is the result of EstimateEnergy. DurationMinutes and MET are
// exposed because the badge rules reuse them.
type EnergyEstimate struct {
	CaloriesBurned  int
	DurationMinutes float64
	MET             float64
}

// EstimateEnergy computes the calorie total attached to a workout at finish
// time. Intensity is lifted volume per minute scaled down by 100, so e.g.
// 10,000 kg over 60 min gives an intensity factor of ~1.67. MET is
// 3.0 + intensity, clamped to [3.0, 8.0], and
// calories = MET * bodyweight(kg) * duration(h), truncated.
//
// Duration is whole minutes between start and end; a workout with no start
// time counts as 60 minutes. Zero duration yields zero calories regardless
// of volume (the intensity factor defaults to 1.0 to avoid dividing by zero).
func EstimateEnergy(in EnergyInput) EnergyEstimate {
	duration := DefaultDurationMinutes
	if in.StartTime != nil {
		duration = float64(in.EndTime.Sub(*in.StartTime) / time.Minute)
	}

	weight := DefaultBodyWeightKG
	if in.BodyWeightKG != nil {
		weight = *in.BodyWeightKG
	}

	intensity := 1.0
	if duration > 0 {
		intensity = (in.TotalVolumeKG / duration) / 100.0
	}

	met := math.Min(metFloor+intensity, metCeil)
	calories := int(met * weight * (duration / 60.0))

	return EnergyEstimate{
		CaloriesBurned:  calories,
		DurationMinutes: duration,
		MET:             met,
	}
}
