package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateSetOneRepMaxRequiresStrictlyHeavier(t *testing.T) {
	prior := []SetSample{{WeightKG: 100, Reps: 3}, {WeightKG: 80, Reps: 8}}

	// Matching the prior max is not a record.
	c := EvaluateSet(100, 1, prior)
	assert.False(t, c.IsNewOneRepMax)

	c = EvaluateSet(100.1, 1, prior)
	assert.True(t, c.IsNewOneRepMax)
	assert.False(t, c.IsVolumeRecord)
}

func TestEvaluateSetVolumeRecord(t *testing.T) {
	prior := []SetSample{{WeightKG: 80, Reps: 6}, {WeightKG: 90, Reps: 4}}

	// Prior max reps at >= 85kg is 4; 7 > 4 and 7 > 5, and 85 < 90 so no 1RM.
	c := EvaluateSet(85, 7, prior)
	assert.False(t, c.IsNewOneRepMax)
	assert.True(t, c.IsVolumeRecord)
}

func TestEvaluateSetLowRepGuard(t *testing.T) {
	prior := []SetSample{{WeightKG: 90, Reps: 2}}

	// 4 reps beats the prior 2 at this weight but is too trivial to count.
	c := EvaluateSet(90, 4, prior)
	assert.False(t, c.IsVolumeRecord)

	c = EvaluateSet(90, 6, prior)
	assert.True(t, c.IsVolumeRecord)
}

func TestEvaluateSetFlagsAreExclusive(t *testing.T) {
	prior := []SetSample{{WeightKG: 90, Reps: 10}}

	// Heavier than anything before: 1RM record even with many reps,
	// the volume flag stays off.
	c := EvaluateSet(95, 12, prior)
	assert.True(t, c.IsNewOneRepMax)
	assert.False(t, c.IsVolumeRecord)
}

func TestEvaluateSetEmptyHistory(t *testing.T) {
	// First ever set for the exercise: any positive weight beats the prior
	// max of zero.
	c := EvaluateSet(20, 10, nil)
	assert.True(t, c.IsNewOneRepMax)
	assert.False(t, c.IsVolumeRecord)
}

func TestEvaluateSetNeitherFlag(t *testing.T) {
	prior := []SetSample{{WeightKG: 100, Reps: 8}}

	c := EvaluateSet(80, 6, prior)
	assert.False(t, c.IsNewOneRepMax)
	assert.False(t, c.IsVolumeRecord)
}
