package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"titanlift/backend/internal/analytics"
	"titanlift/backend/internal/domain"
	"titanlift/backend/internal/repository"
)

// Function-field stubs. Each embeds the repository interface so only the
// methods a test actually exercises need an implementation; calling anything
// else panics, which is exactly what we want from an unexpected call.

type stubWorkoutRepo struct {
	repository.WorkoutRepository
	createFn  func(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	getByIDFn func(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	finishFn  func(ctx context.Context, id primitive.ObjectID, endTime time.Time, caloriesBurned int) error
}

func (s *stubWorkoutRepo) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	return s.createFn(ctx, workout)
}

func (s *stubWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubWorkoutRepo) Finish(ctx context.Context, id primitive.ObjectID, endTime time.Time, caloriesBurned int) error {
	return s.finishFn(ctx, id, endTime, caloriesBurned)
}

type stubSetRepo struct {
	repository.SetRepository
	createFn                func(ctx context.Context, set *domain.Set) (primitive.ObjectID, error)
	listByUserAndExerciseFn func(ctx context.Context, userID, exerciseID primitive.ObjectID) ([]domain.Set, error)
	workoutStatsFn          func(ctx context.Context, workoutID primitive.ObjectID) (domain.WorkoutStats, error)
	activeDatesFn           func(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]time.Time, error)
	volumeByUserFn          func(ctx context.Context, since *time.Time, muscleGroup string) ([]analytics.UserVolume, error)
}

func (s *stubSetRepo) Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error) {
	return s.createFn(ctx, set)
}

func (s *stubSetRepo) ListByUserAndExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) ([]domain.Set, error) {
	return s.listByUserAndExerciseFn(ctx, userID, exerciseID)
}

func (s *stubSetRepo) WorkoutStats(ctx context.Context, workoutID primitive.ObjectID) (domain.WorkoutStats, error) {
	return s.workoutStatsFn(ctx, workoutID)
}

func (s *stubSetRepo) ActiveDates(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]time.Time, error) {
	return s.activeDatesFn(ctx, userID, since)
}

func (s *stubSetRepo) VolumeByUser(ctx context.Context, since *time.Time, muscleGroup string) ([]analytics.UserVolume, error) {
	return s.volumeByUserFn(ctx, since, muscleGroup)
}

type stubUserRepo struct {
	repository.UserRepository
	getByIDFn             func(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	updatePhysicalStatsFn func(ctx context.Context, userID primitive.ObjectID, update repository.PhysicalStatsUpdate) error
}

func (s *stubUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) UpdatePhysicalStats(ctx context.Context, userID primitive.ObjectID, update repository.PhysicalStatsUpdate) error {
	return s.updatePhysicalStatsFn(ctx, userID, update)
}

type stubExerciseRepo struct {
	repository.ExerciseRepository
	getByIDFn func(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
}

func (s *stubExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	return s.getByIDFn(ctx, id)
}

type stubBadgeRepo struct {
	repository.BadgeRepository
	awardFn        func(ctx context.Context, badge *domain.UserBadge) error
	groupsByUserFn func(ctx context.Context, userID primitive.ObjectID) ([]domain.BadgeGroup, error)
}

func (s *stubBadgeRepo) Award(ctx context.Context, badge *domain.UserBadge) error {
	return s.awardFn(ctx, badge)
}

func (s *stubBadgeRepo) GroupsByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.BadgeGroup, error) {
	return s.groupsByUserFn(ctx, userID)
}

type stubWeightLogRepo struct {
	repository.WeightLogRepository
	appendFn func(ctx context.Context, entry *domain.WeightLog) (primitive.ObjectID, error)
}

func (s *stubWeightLogRepo) Append(ctx context.Context, entry *domain.WeightLog) (primitive.ObjectID, error) {
	return s.appendFn(ctx, entry)
}

type stubNutritionRepo struct {
	repository.NutritionRepository
	accumulateFn       func(ctx context.Context, entry *domain.NutritionLog) (*domain.NutritionLog, error)
	getByUserAndDateFn func(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.NutritionLog, error)
}

func (s *stubNutritionRepo) Accumulate(ctx context.Context, entry *domain.NutritionLog) (*domain.NutritionLog, error) {
	return s.accumulateFn(ctx, entry)
}

func (s *stubNutritionRepo) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.NutritionLog, error) {
	return s.getByUserAndDateFn(ctx, userID, date)
}

type stubFollowRepo struct {
	repository.FollowRepository
	followFn         func(ctx context.Context, followerID, followingID primitive.ObjectID) error
	isFollowingFn    func(ctx context.Context, followerID, followingID primitive.ObjectID) (bool, error)
	countFollowersFn func(ctx context.Context, userID primitive.ObjectID) (int64, error)
	countFollowingFn func(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

func (s *stubFollowRepo) Follow(ctx context.Context, followerID, followingID primitive.ObjectID) error {
	return s.followFn(ctx, followerID, followingID)
}

func (s *stubFollowRepo) IsFollowing(ctx context.Context, followerID, followingID primitive.ObjectID) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}

func (s *stubFollowRepo) CountFollowers(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}

func (s *stubFollowRepo) CountFollowing(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}

// stubTx runs the callback inline on the caller's context and records that a
// transaction was requested.
type stubTx struct {
	calls int
}

func (s *stubTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	return fn(ctx)
}
