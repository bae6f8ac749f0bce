package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightLog is one entry in a user's body-weight history. Every weight change
// on the physical profile appends a row here; entries are never overwritten.
type WeightLog struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	WeightKG float64            `bson:"weightKg" json:"weightKg"`
	LoggedAt time.Time          `bson:"loggedAt" json:"loggedAt"`
}

// NutritionLog accumulates one user's intake for one calendar day.
// LogDate is normalized to UTC midnight; (userId, logDate) is unique and
// repeated logs for the same day add onto the stored totals.
type NutritionLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	LogDate    time.Time          `bson:"logDate" json:"logDate"`
	CaloriesIn int                `bson:"caloriesIn" json:"caloriesIn"`
	ProteinG   int                `bson:"proteinG" json:"proteinG"`
	CarbsG     int                `bson:"carbsG" json:"carbsG"`
	FatsG      int                `bson:"fatsG" json:"fatsG"`
}
