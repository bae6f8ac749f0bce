package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"titanlift/backend/internal/analytics"
	"titanlift/backend/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TxRunner executes fn inside a single storage transaction. Repository calls
// made with the context passed to fn join that transaction; if fn returns an
// error nothing it wrote becomes visible.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PhysicalStatsUpdate is a partial update of a user's physical profile.
// Nil fields keep their stored value (COALESCE semantics).
type PhysicalStatsUpdate struct {
	HeightCM      *float64
	WeightKG      *float64
	Gender        *string
	DateOfBirth   *time.Time
	ActivityLevel *string
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePhysicalStats(ctx context.Context, userID primitive.ObjectID, update PhysicalStatsUpdate) error
	UpdateSocialProfile(ctx context.Context, userID primitive.ObjectID, bio, instagram, twitter string) error
	Search(ctx context.Context, term string, exclude primitive.ObjectID, limit int64) ([]domain.User, error)
}

// WorkoutRepository defines the interface for interacting with workout sessions.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	// Finish closes out an in-progress workout. It only matches workouts
	// without an end time, so the calorie total is written exactly once;
	// ErrNotFound means the workout is missing or already finished.
	Finish(ctx context.Context, id primitive.ObjectID, endTime time.Time, caloriesBurned int) error
	GetActiveByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Workout, error)
	HistoryByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSummary, error)
}

// SetRepository defines the interface for interacting with logged sets and
// the historical aggregations derived from them.
type SetRepository interface {
	Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error)
	ListByUserAndExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) ([]domain.Set, error)
	ListRecent(ctx context.Context, limit int64) ([]domain.Set, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// WorkoutStats sums volume and counts sets for one workout.
	WorkoutStats(ctx context.Context, workoutID primitive.ObjectID) (domain.WorkoutStats, error)
	// ActiveDates returns the distinct UTC calendar dates with at least one
	// set for the user since the cutoff, normalized to midnight, ascending.
	ActiveDates(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]time.Time, error)
	// VolumeByUser aggregates lifted volume per user, restricted to sets
	// created after since (nil = unbounded) and, when muscleGroup is
	// non-empty, to exercises of that category (case-insensitive).
	VolumeByUser(ctx context.Context, since *time.Time, muscleGroup string) ([]analytics.UserVolume, error)
}

// ExerciseRepository defines the interface for the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
}

// TemplateRepository defines the interface for workout templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error)
	// SetExercises replaces the template's exercise list, enforcing ownership.
	SetExercises(ctx context.Context, templateID, userID primitive.ObjectID, exercises []domain.TemplateExercise) error
}

// BadgeRepository defines the interface for badge awards.
type BadgeRepository interface {
	// Award inserts a badge row. Duplicate (user, badge name, workout)
	// attempts are silent no-ops; concurrent duplicates must not error.
	Award(ctx context.Context, badge *domain.UserBadge) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.UserBadge, error)
	GroupsByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.BadgeGroup, error)
}

// WeightLogRepository defines the interface for the append-only weight history.
type WeightLogRepository interface {
	Append(ctx context.Context, entry *domain.WeightLog) (primitive.ObjectID, error)
	HistoryByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightLog, error)
}

// NutritionRepository defines the interface for daily nutrition logs.
type NutritionRepository interface {
	// Accumulate adds the entry's macros onto the user's log for that date,
	// creating it if absent, and returns the resulting totals.
	Accumulate(ctx context.Context, entry *domain.NutritionLog) (*domain.NutritionLog, error)
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.NutritionLog, error)
}

// FollowRepository defines the interface for the social follow graph.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID primitive.ObjectID) error // idempotent
	Unfollow(ctx context.Context, followerID, followingID primitive.ObjectID) error
	IsFollowing(ctx context.Context, followerID, followingID primitive.ObjectID) (bool, error)
	CountFollowers(ctx context.Context, userID primitive.ObjectID) (int64, error)
	CountFollowing(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// PhotoRepository defines the interface for progress photo metadata.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressPhoto, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgressPhoto, error)
	Confirm(ctx context.Context, id, userID primitive.ObjectID, fileName string, fileSize int64) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}
