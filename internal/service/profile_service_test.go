package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"titanlift/backend/internal/domain"
	"titanlift/backend/internal/repository"
)

func str(v string) *string { return &v }

func TestUpdatePhysicalStats_AppendsWeightLogInSameTransaction(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	var appended *domain.WeightLog
	userRepo := &stubUserRepo{
		updatePhysicalStatsFn: func(_ context.Context, _ primitive.ObjectID, _ repository.PhysicalStatsUpdate) error {
			return nil
		},
		getByIDFn: func(_ context.Context, _ primitive.ObjectID) (*domain.User, error) {
			return &domain.User{ID: userID, CurrentWeightKG: f64(82.5)}, nil
		},
	}
	weightLogRepo := &stubWeightLogRepo{
		appendFn: func(_ context.Context, entry *domain.WeightLog) (primitive.ObjectID, error) {
			appended = entry
			return primitive.NewObjectID(), nil
		},
	}
	tx := &stubTx{}

	svc := NewProfileService(userRepo, weightLogRepo, nil, nil, nil, nil, nil, tx).(*profileService)
	svc.now = func() time.Time { return now }

	_, err := svc.UpdatePhysicalStats(context.Background(), userID, repository.PhysicalStatsUpdate{WeightKG: f64(82.5)})
	require.NoError(t, err)

	require.NotNil(t, appended)
	assert.Equal(t, userID, appended.UserID)
	assert.Equal(t, 82.5, appended.WeightKG)
	assert.Equal(t, now, appended.LoggedAt)
	assert.Equal(t, 1, tx.calls)
}

func TestUpdatePhysicalStats_NoWeightNoLogEntry(t *testing.T) {
	userRepo := &stubUserRepo{
		updatePhysicalStatsFn: func(_ context.Context, _ primitive.ObjectID, _ repository.PhysicalStatsUpdate) error {
			return nil
		},
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
			return &domain.User{ID: id}, nil
		},
	}
	weightLogRepo := &stubWeightLogRepo{
		appendFn: func(_ context.Context, _ *domain.WeightLog) (primitive.ObjectID, error) {
			t.Fatal("weight log must not be written when the update has no weight")
			return primitive.NilObjectID, nil
		},
	}

	svc := NewProfileService(userRepo, weightLogRepo, nil, nil, nil, nil, nil, &stubTx{})
	_, err := svc.UpdatePhysicalStats(context.Background(), primitive.NewObjectID(), repository.PhysicalStatsUpdate{
		ActivityLevel: str(domain.ActivityModerate),
	})
	require.NoError(t, err)
}

func TestGetPhysicalStats_DerivesMetrics(t *testing.T) {
	dob := time.Date(1996, 5, 1, 0, 0, 0, 0, time.UTC) // 30 on the test date
	userRepo := &stubUserRepo{
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
			return &domain.User{
				ID:              id,
				Gender:          str(domain.GenderMale),
				DateOfBirth:     &dob,
				HeightCM:        f64(175),
				CurrentWeightKG: f64(79),
				ActivityLevel:   str(domain.ActivityLight),
			}, nil
		},
	}

	svc := NewProfileService(userRepo, nil, nil, nil, nil, nil, nil, nil).(*profileService)
	svc.now = func() time.Time { return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC) }

	stats, err := svc.GetPhysicalStats(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	require.NotNil(t, stats.BMR)
	require.NotNil(t, stats.TDEE)
	assert.Equal(t, 1738, *stats.BMR)
	assert.Equal(t, 2389, *stats.TDEE) // 1738 * 1.375 = 2389.75, truncated
}

func TestGetPhysicalStats_MissingInputsSuppressMetrics(t *testing.T) {
	userRepo := &stubUserRepo{
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
			return &domain.User{ID: id, HeightCM: f64(180)}, nil
		},
	}

	svc := NewProfileService(userRepo, nil, nil, nil, nil, nil, nil, nil)
	stats, err := svc.GetPhysicalStats(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, stats.BMR)
	assert.Nil(t, stats.TDEE)
}

func TestGetFullProfile_ComputesStreaks(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Date(2026, 3, 6, 15, 0, 0, 0, time.UTC) // a Friday
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	userRepo := &stubUserRepo{
		getByIDFn: func(_ context.Context, _ primitive.ObjectID) (*domain.User, error) {
			return &domain.User{ID: userID, Username: "lifter"}, nil
		},
	}
	setRepo := &stubSetRepo{
		activeDatesFn: func(_ context.Context, _ primitive.ObjectID, since time.Time) ([]time.Time, error) {
			assert.Equal(t, day("2025-03-06"), since, "lookback must be one year")
			return []time.Time{day("2026-03-02"), day("2026-03-03"), day("2026-03-04"), day("2026-03-06")}, nil
		},
	}
	badgeRepo := &stubBadgeRepo{
		groupsByUserFn: func(_ context.Context, _ primitive.ObjectID) ([]domain.BadgeGroup, error) {
			return []domain.BadgeGroup{{Name: "Heavy Lifter", Count: 3}}, nil
		},
	}

	svc := NewProfileService(userRepo, nil, nil, setRepo, badgeRepo, nil, nil, nil).(*profileService)
	svc.now = func() time.Time { return now }

	profile, err := svc.GetFullProfile(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 1, profile.Streaks.Current, "training today restarts the streak at 1 after a gap")
	assert.Equal(t, 3, profile.Streaks.Max)
	require.Len(t, profile.Badges, 1)
	assert.Equal(t, "Heavy Lifter", profile.Badges[0].Name)
}

func TestGetNutritionLog_EmptyDayReturnsZeroTotals(t *testing.T) {
	userID := primitive.NewObjectID()
	nutritionRepo := &stubNutritionRepo{
		getByUserAndDateFn: func(_ context.Context, _ primitive.ObjectID, _ time.Time) (*domain.NutritionLog, error) {
			return nil, repository.ErrNotFound
		},
	}

	svc := NewProfileService(nil, nil, nutritionRepo, nil, nil, nil, nil, nil)
	log, err := svc.GetNutritionLog(context.Background(), userID, time.Date(2026, 2, 10, 17, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, log.CaloriesIn)
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), log.LogDate)
}
