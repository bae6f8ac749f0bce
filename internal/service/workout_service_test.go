package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"titanlift/backend/internal/analytics"
	"titanlift/backend/internal/domain"
	"titanlift/backend/internal/repository"
)

func f64(v float64) *float64 { return &v }

func TestFinishWorkout_AwardsBadgesAndCalories(t *testing.T) {
	userID := primitive.NewObjectID()
	workoutID := primitive.NewObjectID()
	now := time.Date(2026, 4, 10, 18, 0, 0, 0, time.UTC)
	start := now.Add(-60 * time.Minute)

	var finishedCalories int
	var awarded []string

	workoutRepo := &stubWorkoutRepo{
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			require.Equal(t, workoutID, id)
			return &domain.Workout{ID: workoutID, UserID: userID, StartTime: &start}, nil
		},
		finishFn: func(_ context.Context, _ primitive.ObjectID, endTime time.Time, calories int) error {
			assert.Equal(t, now, endTime)
			finishedCalories = calories
			return nil
		},
	}
	setRepo := &stubSetRepo{
		workoutStatsFn: func(_ context.Context, _ primitive.ObjectID) (domain.WorkoutStats, error) {
			return domain.WorkoutStats{TotalVolumeKG: 12000, SetCount: 22}, nil
		},
	}
	userRepo := &stubUserRepo{
		getByIDFn: func(_ context.Context, _ primitive.ObjectID) (*domain.User, error) {
			return &domain.User{ID: userID, CurrentWeightKG: f64(80)}, nil
		},
	}
	badgeRepo := &stubBadgeRepo{
		awardFn: func(_ context.Context, badge *domain.UserBadge) error {
			require.NotNil(t, badge.WorkoutID)
			assert.Equal(t, workoutID, *badge.WorkoutID)
			awarded = append(awarded, badge.BadgeName)
			return nil
		},
	}
	tx := &stubTx{}

	svc := NewWorkoutService(workoutRepo, setRepo, nil, userRepo, badgeRepo, tx).(*workoutService)
	svc.now = func() time.Time { return now }

	result, err := svc.FinishWorkout(context.Background(), userID, workoutID)
	require.NoError(t, err)

	// 12000 kg over 60 min: MET = min(3+2, 8) = 5, calories = 5*80*1 = 400.
	assert.Equal(t, 400, result.CaloriesBurned)
	assert.Equal(t, 400, finishedCalories)
	assert.Equal(t, now, result.EndTime)

	assert.Equal(t, []string{analytics.BadgeTitanVolume, analytics.BadgeVolumeWarrior}, result.Badges)
	assert.Equal(t, result.Badges, awarded)
	assert.Equal(t, 1, tx.calls, "badge awards and finish must share one transaction")
}

func TestFinishWorkout_AlreadyFinished(t *testing.T) {
	userID := primitive.NewObjectID()
	end := time.Now()
	workoutRepo := &stubWorkoutRepo{
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			return &domain.Workout{ID: id, UserID: userID, EndTime: &end}, nil
		},
	}

	svc := NewWorkoutService(workoutRepo, nil, nil, nil, nil, nil)
	_, err := svc.FinishWorkout(context.Background(), userID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrWorkoutAlreadyFinished)
}

func TestFinishWorkout_LostRaceMapsToAlreadyFinished(t *testing.T) {
	userID := primitive.NewObjectID()
	start := time.Now().Add(-30 * time.Minute)

	workoutRepo := &stubWorkoutRepo{
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			return &domain.Workout{ID: id, UserID: userID, StartTime: &start}, nil
		},
		// The write-once filter matched nothing: another finish won.
		finishFn: func(_ context.Context, _ primitive.ObjectID, _ time.Time, _ int) error {
			return repository.ErrNotFound
		},
	}
	setRepo := &stubSetRepo{
		workoutStatsFn: func(_ context.Context, _ primitive.ObjectID) (domain.WorkoutStats, error) {
			return domain.WorkoutStats{TotalVolumeKG: 11000, SetCount: 25}, nil
		},
	}
	userRepo := &stubUserRepo{
		getByIDFn: func(_ context.Context, _ primitive.ObjectID) (*domain.User, error) {
			return &domain.User{ID: userID}, nil
		},
	}
	badgeRepo := &stubBadgeRepo{
		awardFn: func(_ context.Context, _ *domain.UserBadge) error { return nil },
	}

	svc := NewWorkoutService(workoutRepo, setRepo, nil, userRepo, badgeRepo, &stubTx{})
	_, err := svc.FinishWorkout(context.Background(), userID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrWorkoutAlreadyFinished)
}

func TestFinishWorkout_AccessDenied(t *testing.T) {
	workoutRepo := &stubWorkoutRepo{
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			return &domain.Workout{ID: id, UserID: primitive.NewObjectID()}, nil
		},
	}

	svc := NewWorkoutService(workoutRepo, nil, nil, nil, nil, nil)
	_, err := svc.FinishWorkout(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)
}

func TestLogSet_FlagsOneRepMax(t *testing.T) {
	userID := primitive.NewObjectID()
	workoutID := primitive.NewObjectID()
	exerciseID := primitive.NewObjectID()

	workoutRepo := &stubWorkoutRepo{
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			return &domain.Workout{ID: id, UserID: userID}, nil
		},
	}
	exerciseRepo := &stubExerciseRepo{
		getByIDFn: func(_ context.Context, _ primitive.ObjectID) (*domain.Exercise, error) {
			return &domain.Exercise{ID: exerciseID, Name: "Bench Press", MuscleGroup: "Chest"}, nil
		},
	}
	var created *domain.Set
	setRepo := &stubSetRepo{
		listByUserAndExerciseFn: func(_ context.Context, _, _ primitive.ObjectID) ([]domain.Set, error) {
			return []domain.Set{
				{WeightKG: 100, Reps: 5},
				{WeightKG: 95, Reps: 8},
			}, nil
		},
		createFn: func(_ context.Context, set *domain.Set) (primitive.ObjectID, error) {
			created = set
			return primitive.NewObjectID(), nil
		},
	}

	svc := NewWorkoutService(workoutRepo, setRepo, exerciseRepo, nil, nil, nil)
	result, err := svc.LogSet(context.Background(), userID, LogSetInput{
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		WeightKG:   102.5,
		Reps:       3,
	})
	require.NoError(t, err)

	assert.True(t, result.IsNewOneRepMax)
	assert.False(t, result.IsVolumeRecord)

	require.NotNil(t, created)
	assert.Equal(t, userID, created.UserID, "set must carry the workout owner")
	assert.Equal(t, "Chest", created.MuscleGroup, "set must carry the exercise muscle group")
}

func TestLogSet_WorkoutOwnershipEnforced(t *testing.T) {
	workoutRepo := &stubWorkoutRepo{
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			return &domain.Workout{ID: id, UserID: primitive.NewObjectID()}, nil
		},
	}

	svc := NewWorkoutService(workoutRepo, nil, nil, nil, nil, nil)
	_, err := svc.LogSet(context.Background(), primitive.NewObjectID(), LogSetInput{
		WorkoutID:  primitive.NewObjectID(),
		ExerciseID: primitive.NewObjectID(),
		WeightKG:   60,
		Reps:       10,
	})
	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)
}

func TestLogSet_UnknownExercise(t *testing.T) {
	userID := primitive.NewObjectID()
	workoutRepo := &stubWorkoutRepo{
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
			return &domain.Workout{ID: id, UserID: userID}, nil
		},
	}
	exerciseRepo := &stubExerciseRepo{
		getByIDFn: func(_ context.Context, _ primitive.ObjectID) (*domain.Exercise, error) {
			return nil, repository.ErrNotFound
		},
	}

	svc := NewWorkoutService(workoutRepo, nil, exerciseRepo, nil, nil, nil)
	_, err := svc.LogSet(context.Background(), userID, LogSetInput{
		WorkoutID:  primitive.NewObjectID(),
		ExerciseID: primitive.NewObjectID(),
		WeightKG:   60,
		Reps:       10,
	})
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestStartWorkout_DefaultsStartTime(t *testing.T) {
	now := time.Date(2026, 4, 10, 7, 30, 0, 0, time.UTC)
	workoutRepo := &stubWorkoutRepo{
		createFn: func(_ context.Context, w *domain.Workout) (primitive.ObjectID, error) {
			return primitive.NewObjectID(), nil
		},
	}

	svc := NewWorkoutService(workoutRepo, nil, nil, nil, nil, nil).(*workoutService)
	svc.now = func() time.Time { return now }

	workout, err := svc.StartWorkout(context.Background(), primitive.NewObjectID(), "Push Day", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, workout.StartTime)
	assert.Equal(t, now, *workout.StartTime)
	assert.False(t, workout.ID.IsZero())
}
