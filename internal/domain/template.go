package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateExercise is one planned exercise inside a workout template.
// Embedded in the template document rather than stored separately.
type TemplateExercise struct {
	ExerciseID     primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	OrderIndex     int                `bson:"orderIndex" json:"orderIndex"`
	TargetSets     int                `bson:"targetSets" json:"targetSets"`
	TargetReps     int                `bson:"targetReps" json:"targetReps"`
	TargetWeightKG *float64           `bson:"targetWeightKg,omitempty" json:"targetWeightKg,omitempty"`
}

// WorkoutTemplate is a reusable workout blueprint owned by a user.
// Starting a workout from a template records the template reference on the
// workout; nothing else links back.
type WorkoutTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Exercises   []TemplateExercise `bson:"exercises,omitempty" json:"exercises,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
