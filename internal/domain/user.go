package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity level values accepted on a user's physical profile. Unrecognized
// values are tolerated downstream (the metrics calculator falls back to the
// sedentary multiplier), so these constants are validation hints, not a gate.
const (
	ActivitySedentary = "sedentary"
	ActivityLight     = "light"
	ActivityModerate  = "moderate"
	ActivityActive    = "active"
	ActivityAthlete   = "athlete"
)

// Gender values used by the BMR formula. Anything else takes the female branch.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// User represents an account together with its physical and social profile.
// The physical fields are all optional; derived values (BMR/TDEE) are only
// produced when every input they need is present.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // Unique
	Email        string             `bson:"email" json:"email"`       // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose this via JSON

	// --- Physical profile (all optional) ---
	Gender          *string    `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth     *time.Time `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	HeightCM        *float64   `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	CurrentWeightKG *float64   `bson:"currentWeightKg,omitempty" json:"currentWeightKg,omitempty"`
	ActivityLevel   *string    `bson:"activityLevel,omitempty" json:"activityLevel,omitempty"`

	// --- Social profile ---
	Bio             string `bson:"bio,omitempty" json:"bio,omitempty"`
	InstagramHandle string `bson:"instagramHandle,omitempty" json:"instagramHandle,omitempty"`
	TwitterHandle   string `bson:"twitterHandle,omitempty" json:"twitterHandle,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
