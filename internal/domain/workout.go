package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout represents a single training session. It is created when the user
// starts training and mutated exactly once when finished: EndTime and
// CaloriesBurned are written together and never recomputed afterward.
type Workout struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID  `bson:"userId" json:"userId"`
	Name           string              `bson:"name,omitempty" json:"name,omitempty"` // e.g. "Push Day"
	StartTime      *time.Time          `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime        *time.Time          `bson:"endTime,omitempty" json:"endTime,omitempty"` // nil while in progress
	Notes          string              `bson:"notes,omitempty" json:"notes,omitempty"`
	TemplateID     *primitive.ObjectID `bson:"templateId,omitempty" json:"templateId,omitempty"`
	CaloriesBurned *int                `bson:"caloriesBurned,omitempty" json:"caloriesBurned,omitempty"` // Set on finish
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
}

// Finished reports whether the workout has been closed out.
func (w *Workout) Finished() bool {
	return w.EndTime != nil
}

// Set is one logged set within a workout. Immutable once created.
// UserID and MuscleGroup are denormalized from the parent workout and the
// exercise so that record/streak/leaderboard queries never need a join back
// through workouts.
type Set struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID   primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"` // Denormalized from workout
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	MuscleGroup string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // Denormalized from exercise
	WeightKG    float64            `bson:"weightKg" json:"weightKg"`
	Reps        int                `bson:"reps" json:"reps"`
	RPE         *float64           `bson:"rpe,omitempty" json:"rpe,omitempty"` // Perceived effort, optional
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Volume is the lifted volume of this set in kg.
func (s *Set) Volume() float64 {
	return s.WeightKG * float64(s.Reps)
}

// WorkoutStats are the aggregates of a workout's sets, computed at finish time.
type WorkoutStats struct {
	TotalVolumeKG float64
	SetCount      int
}

// WorkoutSummary is a finished workout enriched with its set aggregates,
// used by the public workout history.
type WorkoutSummary struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	StartTime     *time.Time         `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime       *time.Time         `bson:"endTime,omitempty" json:"endTime,omitempty"`
	TotalVolumeKG float64            `bson:"totalVolumeKg" json:"totalVolumeKg"`
	SetCount      int                `bson:"setCount" json:"setCount"`
}
