package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimateEnergyTypicalWorkout(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(60 * time.Minute)

	est := EstimateEnergy(EnergyInput{
		StartTime:     &start,
		EndTime:       end,
		TotalVolumeKG: 6000,
		BodyWeightKG:  f64Ptr(80),
	})

	// intensity = (6000/60)/100 = 1.0, MET = 4.0
	assert.Equal(t, 60.0, est.DurationMinutes)
	assert.Equal(t, 4.0, est.MET)
	// 4.0 * 80 * 1h = 320
	assert.Equal(t, 320, est.CaloriesBurned)
}

func TestEstimateEnergyZeroDuration(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	est := EstimateEnergy(EnergyInput{
		StartTime:     &now,
		EndTime:       now,
		TotalVolumeKG: 50000, // volume is irrelevant at zero duration
		BodyWeightKG:  f64Ptr(80),
	})

	assert.Equal(t, 0.0, est.DurationMinutes)
	assert.Equal(t, 4.0, est.MET) // intensity factor defaults to 1.0
	assert.Equal(t, 0, est.CaloriesBurned)
}

func TestEstimateEnergyMissingStartDefaultsToHour(t *testing.T) {
	end := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	est := EstimateEnergy(EnergyInput{
		EndTime:       end,
		TotalVolumeKG: 0,
		BodyWeightKG:  f64Ptr(100),
	})

	assert.Equal(t, DefaultDurationMinutes, est.DurationMinutes)
	assert.Equal(t, 3.0, est.MET)
	assert.Equal(t, 300, est.CaloriesBurned) // 3.0 * 100 * 1h
}

func TestEstimateEnergyDefaultBodyWeight(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(60 * time.Minute)

	est := EstimateEnergy(EnergyInput{
		StartTime:     &start,
		EndTime:       end,
		TotalVolumeKG: 6000,
	})

	assert.Equal(t, 300, est.CaloriesBurned) // 4.0 * 75 * 1h
}

func TestEstimateEnergyMETCeiling(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	est := EstimateEnergy(EnergyInput{
		StartTime:     &start,
		EndTime:       end,
		TotalVolumeKG: 60000, // intensity = 20, far past the cap
		BodyWeightKG:  f64Ptr(80),
	})

	assert.Equal(t, 8.0, est.MET)
	assert.Equal(t, 320, est.CaloriesBurned) // 8.0 * 80 * 0.5h
}

func TestEstimateEnergyTruncatesWholeMinutes(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(45*time.Minute + 59*time.Second)

	est := EstimateEnergy(EnergyInput{
		StartTime:     &start,
		EndTime:       end,
		TotalVolumeKG: 0,
		BodyWeightKG:  f64Ptr(75),
	})

	assert.Equal(t, 45.0, est.DurationMinutes)
}
