package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"titanlift/backend/internal/analytics"
	"titanlift/backend/internal/domain"
	"titanlift/backend/internal/repository"
)

// --- Error Definitions ---
var (
	ErrCannotFollowSelf = errors.New("users cannot follow themselves")
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	userSearchLimit     = 20
)

// SocialService covers the community surface: the volume leaderboard, the
// follow graph, public profiles and shared workout history.
type SocialService interface {
	Leaderboard(ctx context.Context, filter analytics.LeaderboardFilter) ([]analytics.LeaderboardEntry, error)
	Follow(ctx context.Context, followerID, followingID primitive.ObjectID) error
	Unfollow(ctx context.Context, followerID, followingID primitive.ObjectID) error
	GetProfile(ctx context.Context, callerID, userID primitive.ObjectID) (*domain.SocialProfile, error)
	UpdateSocialProfile(ctx context.Context, userID primitive.ObjectID, bio, instagram, twitter string) error
	SearchUsers(ctx context.Context, callerID primitive.ObjectID, term string) ([]domain.SocialProfile, error)
	WorkoutHistory(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSummary, error)
	BadgesByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.BadgeGroup, error)
}

// socialService implements the SocialService interface.
type socialService struct {
	userRepo    repository.UserRepository
	setRepo     repository.SetRepository
	workoutRepo repository.WorkoutRepository
	followRepo  repository.FollowRepository
	badgeRepo   repository.BadgeRepository
	now         func() time.Time
}

// NewSocialService creates a new instance of socialService.
func NewSocialService(
	userRepo repository.UserRepository,
	setRepo repository.SetRepository,
	workoutRepo repository.WorkoutRepository,
	followRepo repository.FollowRepository,
	badgeRepo repository.BadgeRepository,
) SocialService {
	return &socialService{
		userRepo:    userRepo,
		setRepo:     setRepo,
		workoutRepo: workoutRepo,
		followRepo:  followRepo,
		badgeRepo:   badgeRepo,
		now:         time.Now,
	}
}

// Leaderboard ranks users by lifted volume inside the filter's window,
// optionally restricted to one muscle group. The result is computed on
// demand; nothing is cached or persisted.
func (s *socialService) Leaderboard(ctx context.Context, filter analytics.LeaderboardFilter) ([]analytics.LeaderboardEntry, error) {
	since := filter.Window.Since(s.now().UTC())
	volumes, err := s.setRepo.VolumeByUser(ctx, since, strings.TrimSpace(filter.MuscleGroup))
	if err != nil {
		return nil, err
	}
	return analytics.RankLeaderboard(volumes), nil
}

// Follow creates the directed edge. Re-following is a no-op.
func (s *socialService) Follow(ctx context.Context, followerID, followingID primitive.ObjectID) error {
	if followerID == followingID {
		return ErrCannotFollowSelf
	}
	if _, err := s.userRepo.GetByID(ctx, followingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.followRepo.Follow(ctx, followerID, followingID)
}

// Unfollow removes the edge if present.
func (s *socialService) Unfollow(ctx context.Context, followerID, followingID primitive.ObjectID) error {
	return s.followRepo.Unfollow(ctx, followerID, followingID)
}

func (s *socialService) buildProfile(ctx context.Context, callerID primitive.ObjectID, user *domain.User) (*domain.SocialProfile, error) {
	followers, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if callerID != user.ID {
		isFollowing, err = s.followRepo.IsFollowing(ctx, callerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &domain.SocialProfile{
		ID:          user.ID,
		Username:    user.Username,
		Bio:         user.Bio,
		Instagram:   user.InstagramHandle,
		Twitter:     user.TwitterHandle,
		Followers:   followers,
		Following:   following,
		IsFollowing: isFollowing,
	}, nil
}

// GetProfile returns a user's public profile with follow stats relative to
// the caller.
func (s *socialService) GetProfile(ctx context.Context, callerID, userID primitive.ObjectID) (*domain.SocialProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.buildProfile(ctx, callerID, user)
}

// UpdateSocialProfile replaces the caller's bio and social handles.
func (s *socialService) UpdateSocialProfile(ctx context.Context, userID primitive.ObjectID, bio, instagram, twitter string) error {
	err := s.userRepo.UpdateSocialProfile(ctx, userID, bio, instagram, twitter)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// SearchUsers finds accounts by username prefix or substring, excluding the
// caller, with follow stats resolved per hit.
func (s *socialService) SearchUsers(ctx context.Context, callerID primitive.ObjectID, term string) ([]domain.SocialProfile, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []domain.SocialProfile{}, nil
	}

	users, err := s.userRepo.Search(ctx, term, callerID, userSearchLimit)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.SocialProfile, 0, len(users))
	for i := range users {
		p, err := s.buildProfile(ctx, callerID, &users[i])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

// WorkoutHistory lists a user's finished workouts, newest first, with set
// aggregates attached.
func (s *socialService) WorkoutHistory(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSummary, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.workoutRepo.HistoryByUser(ctx, userID, limit)
}

// BadgesByUser returns a user's trophy case.
func (s *socialService) BadgesByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.BadgeGroup, error) {
	return s.badgeRepo.GroupsByUser(ctx, userID)
}
