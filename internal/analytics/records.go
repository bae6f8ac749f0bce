package analytics

// SetSample is the weight/reps pair of one historical set.
type SetSample struct {
	WeightKG float64
	Reps     int
}

// minRecordReps suppresses trivial low-rep "records": a volume PR requires
// strictly more than this many reps.
const minRecordReps = 5

// SetClassification flags a newly logged set. At most one flag is true.
type SetClassification struct {
	IsNewOneRepMax bool
	IsVolumeRecord bool
}

// EvaluateSet classifies a new set against the user's full prior history for
// the same exercise (the set being evaluated must not be in prior).
//
// A 1RM record strictly exceeds the heaviest weight ever lifted. A volume
// (rep) record is not a 1RM record, beats the most reps ever performed at
// this weight or heavier, and has more than minRecordReps reps. Comparisons
// are strict: matching the old maximum is not a record.
func EvaluateSet(weightKG float64, reps int, prior []SetSample) SetClassification {
	var prevMaxWeight float64
	prevMaxReps := 0
	for _, s := range prior {
		if s.WeightKG > prevMaxWeight {
			prevMaxWeight = s.WeightKG
		}
		if s.WeightKG >= weightKG && s.Reps > prevMaxReps {
			prevMaxReps = s.Reps
		}
	}

	isNewOneRepMax := weightKG > prevMaxWeight
	isVolumeRecord := !isNewOneRepMax && reps > prevMaxReps && reps > minRecordReps

	return SetClassification{
		IsNewOneRepMax: isNewOneRepMax,
		IsVolumeRecord: isVolumeRecord,
	}
}
