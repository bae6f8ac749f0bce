package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a catalog entry. The catalog is global (seeded, not per-user);
// MuscleGroup drives the leaderboard category filter.
type Exercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	MuscleGroup  string             `bson:"muscleGroup" json:"muscleGroup"` // e.g. "Chest", "Legs", "Back"
	Equipment    string             `bson:"equipment,omitempty" json:"equipment,omitempty"`
	AnimationURL string             `bson:"animationUrl,omitempty" json:"animationUrl,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
