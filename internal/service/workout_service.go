package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"titanlift/backend/internal/analytics"
	"titanlift/backend/internal/domain"
	"titanlift/backend/internal/repository"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound        = errors.New("workout not found")
	ErrWorkoutAccessDenied    = errors.New("workout does not belong to this user")
	ErrWorkoutAlreadyFinished = errors.New("workout is already finished")
	ErrNoActiveWorkout        = errors.New("no active workout")
	ErrExerciseNotFound       = errors.New("exercise not found")
	ErrSetNotFound            = errors.New("set not found")
)

// LogSetInput is the payload for logging one set.
type LogSetInput struct {
	WorkoutID  primitive.ObjectID
	ExerciseID primitive.ObjectID
	WeightKG   float64
	Reps       int
	RPE        *float64
}

// LogSetResult is the persisted set plus its record classification.
type LogSetResult struct {
	Set            domain.Set `json:"set"`
	IsNewOneRepMax bool       `json:"isNew1Rm"`
	IsVolumeRecord bool       `json:"isVolPr"`
}

// FinishWorkoutResult reports what finishing a workout produced.
type FinishWorkoutResult struct {
	ID             primitive.ObjectID `json:"id"`
	EndTime        time.Time          `json:"endTime"`
	CaloriesBurned int                `json:"caloriesBurned"`
	Badges         []string           `json:"badges"`
}

// WorkoutService orchestrates workout sessions: starting, logging sets with
// personal-record detection, and the finish flow that derives the energy
// estimate and badge awards.
type WorkoutService interface {
	StartWorkout(ctx context.Context, userID primitive.ObjectID, name string, startTime *time.Time, templateID *primitive.ObjectID) (*domain.Workout, error)
	GetActiveWorkout(ctx context.Context, userID primitive.ObjectID) (*domain.Workout, error)
	LogSet(ctx context.Context, userID primitive.ObjectID, input LogSetInput) (*LogSetResult, error)
	ListRecentSets(ctx context.Context, limit int64) ([]domain.Set, error)
	DeleteSet(ctx context.Context, setID primitive.ObjectID) error
	FinishWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*FinishWorkoutResult, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	setRepo      repository.SetRepository
	exerciseRepo repository.ExerciseRepository
	userRepo     repository.UserRepository
	badgeRepo    repository.BadgeRepository
	tx           repository.TxRunner
	now          func() time.Time
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workoutRepo repository.WorkoutRepository,
	setRepo repository.SetRepository,
	exerciseRepo repository.ExerciseRepository,
	userRepo repository.UserRepository,
	badgeRepo repository.BadgeRepository,
	tx repository.TxRunner,
) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		setRepo:      setRepo,
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
		badgeRepo:    badgeRepo,
		tx:           tx,
		now:          time.Now,
	}
}

// StartWorkout opens a new session for the caller. A missing start time
// defaults to now; the energy estimator would otherwise assume an hour.
func (s *workoutService) StartWorkout(ctx context.Context, userID primitive.ObjectID, name string, startTime *time.Time, templateID *primitive.ObjectID) (*domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to start a workout")
	}
	if startTime == nil {
		t := s.now().UTC()
		startTime = &t
	}

	workout := &domain.Workout{
		UserID:     userID,
		Name:       name,
		StartTime:  startTime,
		TemplateID: templateID,
	}
	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = workoutID
	return workout, nil
}

// GetActiveWorkout returns the caller's in-progress session, if any.
func (s *workoutService) GetActiveWorkout(ctx context.Context, userID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveWorkout
		}
		return nil, err
	}
	return workout, nil
}

// LogSet evaluates the new set against the caller's prior history for the
// exercise, then persists it.
//
// The evaluation reads history first and inserts second, without a lock:
// two concurrent logs for the same user/exercise can both be classified
// against the same stale baseline and both come back flagged as records.
// That window is accepted; closing it would require serializing all set
// logging per (user, exercise).
func (s *workoutService) LogSet(ctx context.Context, userID primitive.ObjectID, input LogSetInput) (*LogSetResult, error) {
	workout, err := s.workoutRepo.GetByID(ctx, input.WorkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrWorkoutAccessDenied
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, input.ExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	prior, err := s.setRepo.ListByUserAndExercise(ctx, userID, input.ExerciseID)
	if err != nil {
		return nil, err
	}
	samples := make([]analytics.SetSample, len(prior))
	for i, p := range prior {
		samples[i] = analytics.SetSample{WeightKG: p.WeightKG, Reps: p.Reps}
	}
	class := analytics.EvaluateSet(input.WeightKG, input.Reps, samples)

	set := &domain.Set{
		WorkoutID:   input.WorkoutID,
		UserID:      userID,
		ExerciseID:  input.ExerciseID,
		MuscleGroup: exercise.MuscleGroup,
		WeightKG:    input.WeightKG,
		Reps:        input.Reps,
		RPE:         input.RPE,
	}
	setID, err := s.setRepo.Create(ctx, set)
	if err != nil {
		return nil, err
	}
	set.ID = setID

	return &LogSetResult{
		Set:            *set,
		IsNewOneRepMax: class.IsNewOneRepMax,
		IsVolumeRecord: class.IsVolumeRecord,
	}, nil
}

// ListRecentSets returns the newest sets across the system, bounded.
func (s *workoutService) ListRecentSets(ctx context.Context, limit int64) ([]domain.Set, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}
	return s.setRepo.ListRecent(ctx, limit)
}

// DeleteSet removes a logged set.
func (s *workoutService) DeleteSet(ctx context.Context, setID primitive.ObjectID) error {
	err := s.setRepo.Delete(ctx, setID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSetNotFound
	}
	return err
}

// FinishWorkout closes out a session: it derives the energy estimate from
// the workout's aggregates, classifies badges, persists the awards and marks
// the workout ended, all inside one transaction, so a failure partway
// leaves no partial badge state behind.
//
// The workout is terminal afterwards. A repeated finish reports
// ErrWorkoutAlreadyFinished, and even if two finishes race, the badge rows
// are keyed uniquely per (user, badge, workout) so awards never duplicate.
func (s *workoutService) FinishWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*FinishWorkoutResult, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrWorkoutAccessDenied
	}
	if workout.Finished() {
		return nil, ErrWorkoutAlreadyFinished
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.setRepo.WorkoutStats(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	endTime := s.now().UTC()
	estimate := analytics.EstimateEnergy(analytics.EnergyInput{
		StartTime:     workout.StartTime,
		EndTime:       endTime,
		TotalVolumeKG: stats.TotalVolumeKG,
		BodyWeightKG:  user.CurrentWeightKG,
	})
	badges := analytics.DetermineBadges(stats.TotalVolumeKG, estimate.DurationMinutes, stats.SetCount)

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, name := range badges {
			award := &domain.UserBadge{
				UserID:    userID,
				WorkoutID: &workoutID,
				BadgeName: name,
				EarnedAt:  endTime,
			}
			if err := s.badgeRepo.Award(txCtx, award); err != nil {
				return err
			}
		}
		return s.workoutRepo.Finish(txCtx, workoutID, endTime, estimate.CaloriesBurned)
	})
	if err != nil {
		// A concurrent finish won the write-once update; the transaction
		// rolled our badge rows back.
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutAlreadyFinished
		}
		return nil, err
	}

	return &FinishWorkoutResult{
		ID:             workoutID,
		EndTime:        endTime,
		CaloriesBurned: estimate.CaloriesBurned,
		Badges:         badges,
	}, nil
}
