package analytics

// Badge names awarded on workout finish.
const (
	BadgeTitanVolume   = "Titan Volume"   // volume >= 10,000 kg
	BadgeHeavyLifter   = "Heavy Lifter"   // volume >= 5,000 kg (below Titan tier)
	BadgeMarathoner    = "Marathoner"     // duration >= 90 min
	BadgeSpeedDemon    = "Speed Demon"    // <= 30 min with volume > 2,000 kg
	BadgeVolumeWarrior = "Volume Warrior" // >= 20 sets
)

const (
	titanVolumeKG      = 10000.0
	heavyLifterKG      = 5000.0
	marathonerMinutes  = 90.0
	speedDemonMinutes  = 30.0
	speedDemonVolumeKG = 2000.0
	volumeWarriorSets  = 20
)

// DetermineBadges applies the threshold rules to a finished workout's
// aggregates and returns the badge names earned. The volume pair is
// mutually exclusive (highest tier only); Marathoner wins over Speed Demon;
// Volume Warrior is independent. Thresholds on the >= side are inclusive,
// so a 10,000 kg workout is Titan Volume and nothing else from that pair.
func DetermineBadges(volumeKG, durationMinutes float64, setCount int) []string {
	var badges []string

	if volumeKG >= titanVolumeKG {
		badges = append(badges, BadgeTitanVolume)
	} else if volumeKG >= heavyLifterKG {
		badges = append(badges, BadgeHeavyLifter)
	}

	if durationMinutes >= marathonerMinutes {
		badges = append(badges, BadgeMarathoner)
	} else if durationMinutes <= speedDemonMinutes && volumeKG > speedDemonVolumeKG {
		badges = append(badges, BadgeSpeedDemon)
	}

	if setCount >= volumeWarriorSets {
		badges = append(badges, BadgeVolumeWarrior)
	}

	return badges
}
