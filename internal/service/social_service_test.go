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
)

func TestLeaderboard_WeeklyWindowAndRanking(t *testing.T) {
	now := time.Date(2026, 7, 20, 10, 0, 0, 0, time.UTC)

	setRepo := &stubSetRepo{
		volumeByUserFn: func(_ context.Context, since *time.Time, muscleGroup string) ([]analytics.UserVolume, error) {
			require.NotNil(t, since, "weekly window must pass a cutoff")
			assert.Equal(t, now.AddDate(0, 0, -7), *since)
			assert.Equal(t, "legs", muscleGroup)
			return []analytics.UserVolume{
				{UserID: "b", Username: "bob", TotalVolumeKG: 5000},
				{UserID: "a", Username: "alice", TotalVolumeKG: 9000},
			}, nil
		},
	}

	svc := NewSocialService(nil, setRepo, nil, nil, nil).(*socialService)
	svc.now = func() time.Time { return now }

	entries, err := svc.Leaderboard(context.Background(), analytics.LeaderboardFilter{
		Window:      analytics.WindowWeekly,
		MuscleGroup: " legs ",
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "bob", entries[1].Username)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestLeaderboard_AllTimeHasNoCutoff(t *testing.T) {
	setRepo := &stubSetRepo{
		volumeByUserFn: func(_ context.Context, since *time.Time, muscleGroup string) ([]analytics.UserVolume, error) {
			assert.Nil(t, since)
			assert.Empty(t, muscleGroup)
			return nil, nil
		},
	}

	svc := NewSocialService(nil, setRepo, nil, nil, nil)
	entries, err := svc.Leaderboard(context.Background(), analytics.LeaderboardFilter{Window: analytics.WindowAll})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFollow_RejectsSelf(t *testing.T) {
	svc := NewSocialService(nil, nil, nil, nil, nil)
	id := primitive.NewObjectID()
	err := svc.Follow(context.Background(), id, id)
	assert.ErrorIs(t, err, ErrCannotFollowSelf)
}

func TestGetProfile_ResolvesFollowState(t *testing.T) {
	callerID := primitive.NewObjectID()
	targetID := primitive.NewObjectID()

	userRepo := &stubUserRepo{
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
			return &domain.User{ID: id, Username: "lifter", Bio: "train hard", InstagramHandle: "@lifter"}, nil
		},
	}
	followRepo := &stubFollowRepo{
		countFollowersFn: func(_ context.Context, _ primitive.ObjectID) (int64, error) { return 12, nil },
		countFollowingFn: func(_ context.Context, _ primitive.ObjectID) (int64, error) { return 7, nil },
		isFollowingFn: func(_ context.Context, followerID, followingID primitive.ObjectID) (bool, error) {
			assert.Equal(t, callerID, followerID)
			assert.Equal(t, targetID, followingID)
			return true, nil
		},
	}

	svc := NewSocialService(userRepo, nil, nil, followRepo, nil)
	profile, err := svc.GetProfile(context.Background(), callerID, targetID)
	require.NoError(t, err)

	assert.Equal(t, "lifter", profile.Username)
	assert.Equal(t, int64(12), profile.Followers)
	assert.Equal(t, int64(7), profile.Following)
	assert.True(t, profile.IsFollowing)
}

func TestGetProfile_OwnProfileSkipsFollowCheck(t *testing.T) {
	userID := primitive.NewObjectID()
	userRepo := &stubUserRepo{
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
			return &domain.User{ID: id, Username: "me"}, nil
		},
	}
	followRepo := &stubFollowRepo{
		countFollowersFn: func(_ context.Context, _ primitive.ObjectID) (int64, error) { return 0, nil },
		countFollowingFn: func(_ context.Context, _ primitive.ObjectID) (int64, error) { return 0, nil },
		isFollowingFn: func(_ context.Context, _, _ primitive.ObjectID) (bool, error) {
			t.Fatal("own profile must not query the follow edge")
			return false, nil
		},
	}

	svc := NewSocialService(userRepo, nil, nil, followRepo, nil)
	profile, err := svc.GetProfile(context.Background(), userID, userID)
	require.NoError(t, err)
	assert.False(t, profile.IsFollowing)
}

func TestSearchUsers_BlankTermShortCircuits(t *testing.T) {
	svc := NewSocialService(nil, nil, nil, nil, nil)
	profiles, err := svc.SearchUsers(context.Background(), primitive.NewObjectID(), "   ")
	require.NoError(t, err)
	assert.Empty(t, profiles)
}
