package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserBadge is one badge award. Award history is append-only and
// workout-scoped: at most one row per (user, badge name, workout), but the
// same badge name can be earned again on a later workout.
type UserBadge struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"userId" json:"userId"`
	WorkoutID *primitive.ObjectID `bson:"workoutId,omitempty" json:"workoutId,omitempty"`
	BadgeName string              `bson:"badgeName" json:"badgeName"`
	EarnedAt  time.Time           `bson:"earnedAt" json:"earnedAt"`
}

// BadgeGroup is the trophy-case view of a user's awards: one entry per badge
// name with how often and how recently it was earned.
type BadgeGroup struct {
	Name         string    `bson:"_id" json:"name"`
	Count        int64     `bson:"count" json:"count"`
	LastEarnedAt time.Time `bson:"lastEarnedAt" json:"lastEarnedAt"`
}
