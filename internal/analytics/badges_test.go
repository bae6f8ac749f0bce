package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineBadgesVolumeTiersAreExclusive(t *testing.T) {
	// Exactly at the Titan threshold: highest tier only.
	badges := DetermineBadges(10000, 60, 10)
	assert.Equal(t, []string{BadgeTitanVolume}, badges)

	badges = DetermineBadges(5000, 60, 10)
	assert.Equal(t, []string{BadgeHeavyLifter}, badges)

	badges = DetermineBadges(4999, 60, 10)
	assert.Empty(t, badges)
}

func TestDetermineBadgesMarathoner(t *testing.T) {
	badges := DetermineBadges(4999, 95, 10)
	assert.Equal(t, []string{BadgeMarathoner}, badges)
}

func TestDetermineBadgesSpeedDemon(t *testing.T) {
	badges := DetermineBadges(2500, 25, 10)
	assert.Equal(t, []string{BadgeSpeedDemon}, badges)

	// Volume threshold is strict: exactly 2000 kg does not qualify.
	badges = DetermineBadges(2000, 25, 10)
	assert.Empty(t, badges)

	// A long workout cannot be a Speed Demon even with the volume.
	badges = DetermineBadges(2500, 95, 10)
	assert.Equal(t, []string{BadgeMarathoner}, badges)
}

func TestDetermineBadgesVolumeWarriorIndependent(t *testing.T) {
	badges := DetermineBadges(0, 60, 20)
	assert.Equal(t, []string{BadgeVolumeWarrior}, badges)
}

func TestDetermineBadgesStacking(t *testing.T) {
	// Heavy, long and high set count all at once.
	badges := DetermineBadges(12000, 120, 25)
	assert.Equal(t, []string{BadgeTitanVolume, BadgeMarathoner, BadgeVolumeWarrior}, badges)
}

func TestDetermineBadgesNone(t *testing.T) {
	assert.Empty(t, DetermineBadges(1000, 45, 8))
}
