package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"titanlift/backend/internal/analytics"
	"titanlift/backend/internal/domain"
	"titanlift/backend/internal/repository"
	"titanlift/backend/internal/storage"
)

// --- Error Definitions ---
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrPhotoNotFound     = errors.New("progress photo not found")
	ErrPhotoAccessDenied = errors.New("progress photo does not belong to this user")
)

// PhysicalStats is a user's stored physical profile together with the
// energy values derived from it.
type PhysicalStats struct {
	Gender        *string    `json:"gender,omitempty"`
	DateOfBirth   *time.Time `json:"dateOfBirth,omitempty"`
	HeightCM      *float64   `json:"heightCm,omitempty"`
	WeightKG      *float64   `json:"currentWeightKg,omitempty"`
	ActivityLevel *string    `json:"activityLevel,omitempty"`
	BMR           *int       `json:"bmr,omitempty"`
	TDEE          *int       `json:"tdee,omitempty"`
}

// FullProfile is the dashboard view of an account: identity, physical stats,
// streaks and the trophy case.
type FullProfile struct {
	ID       primitive.ObjectID  `json:"id"`
	Username string              `json:"username"`
	Email    string              `json:"email"`
	Physical PhysicalStats       `json:"physical"`
	Streaks  analytics.Streaks   `json:"streaks"`
	Badges   []domain.BadgeGroup `json:"badges"`
}

// PhotoUploadTicket is the response to a progress-photo upload request: where
// to PUT the bytes and the metadata row to confirm afterwards.
type PhotoUploadTicket struct {
	PhotoID   primitive.ObjectID `json:"photoId"`
	ObjectKey string             `json:"objectKey"`
	UploadURL string             `json:"uploadUrl"`
}

// ProgressPhotoView is a confirmed photo with a presigned download URL.
type ProgressPhotoView struct {
	ID          primitive.ObjectID `json:"id"`
	FileName    string             `json:"fileName,omitempty"`
	ContentType string             `json:"contentType"`
	FileSize    int64              `json:"fileSize,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	DownloadURL string             `json:"downloadUrl"`
}

// ProfileService covers the account-facing surface: physical stats with
// derived metrics, weight history, daily nutrition and progress photos.
type ProfileService interface {
	GetPhysicalStats(ctx context.Context, userID primitive.ObjectID) (*PhysicalStats, error)
	UpdatePhysicalStats(ctx context.Context, userID primitive.ObjectID, update repository.PhysicalStatsUpdate) (*PhysicalStats, error)
	WeightHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightLog, error)
	LogNutrition(ctx context.Context, userID primitive.ObjectID, entry domain.NutritionLog) (*domain.NutritionLog, error)
	GetNutritionLog(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.NutritionLog, error)
	GetFullProfile(ctx context.Context, userID primitive.ObjectID) (*FullProfile, error)
	RequestPhotoUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*PhotoUploadTicket, error)
	ConfirmPhotoUpload(ctx context.Context, userID, photoID primitive.ObjectID, fileName string, fileSize int64) error
	ListPhotos(ctx context.Context, userID primitive.ObjectID) ([]ProgressPhotoView, error)
	DeletePhoto(ctx context.Context, userID, photoID primitive.ObjectID) error
}

// profileService implements the ProfileService interface.
type profileService struct {
	userRepo      repository.UserRepository
	weightLogRepo repository.WeightLogRepository
	nutritionRepo repository.NutritionRepository
	setRepo       repository.SetRepository
	badgeRepo     repository.BadgeRepository
	photoRepo     repository.PhotoRepository
	fileStorage   storage.FileStorage
	tx            repository.TxRunner
	now           func() time.Time
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(
	userRepo repository.UserRepository,
	weightLogRepo repository.WeightLogRepository,
	nutritionRepo repository.NutritionRepository,
	setRepo repository.SetRepository,
	badgeRepo repository.BadgeRepository,
	photoRepo repository.PhotoRepository,
	fileStorage storage.FileStorage,
	tx repository.TxRunner,
) ProfileService {
	return &profileService{
		userRepo:      userRepo,
		weightLogRepo: weightLogRepo,
		nutritionRepo: nutritionRepo,
		setRepo:       setRepo,
		badgeRepo:     badgeRepo,
		photoRepo:     photoRepo,
		fileStorage:   fileStorage,
		tx:            tx,
		now:           time.Now,
	}
}

func (s *profileService) physicalStats(user *domain.User, now time.Time) *PhysicalStats {
	metrics := analytics.ComputeProfileMetrics(analytics.ProfileInput{
		HeightCM:      user.HeightCM,
		WeightKG:      user.CurrentWeightKG,
		Gender:        user.Gender,
		DateOfBirth:   user.DateOfBirth,
		ActivityLevel: user.ActivityLevel,
	}, now)

	return &PhysicalStats{
		Gender:        user.Gender,
		DateOfBirth:   user.DateOfBirth,
		HeightCM:      user.HeightCM,
		WeightKG:      user.CurrentWeightKG,
		ActivityLevel: user.ActivityLevel,
		BMR:           metrics.BMR,
		TDEE:          metrics.TDEE,
	}
}

// GetPhysicalStats returns the stored profile with BMR/TDEE recomputed on the
// fly. The derived values are never persisted.
func (s *profileService) GetPhysicalStats(ctx context.Context, userID primitive.ObjectID) (*PhysicalStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.physicalStats(user, s.now().UTC()), nil
}

// UpdatePhysicalStats applies a partial profile update. When the update
// carries a weight, a weight-history entry is appended in the same
// transaction, so the profile and its history never drift apart.
func (s *profileService) UpdatePhysicalStats(ctx context.Context, userID primitive.ObjectID, update repository.PhysicalStatsUpdate) (*PhysicalStats, error) {
	now := s.now().UTC()

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.UpdatePhysicalStats(txCtx, userID, update); err != nil {
			return err
		}
		if update.WeightKG != nil {
			_, err := s.weightLogRepo.Append(txCtx, &domain.WeightLog{
				UserID:   userID,
				WeightKG: *update.WeightKG,
				LoggedAt: now,
			})
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.GetPhysicalStats(ctx, userID)
}

// WeightHistory returns the user's append-only weight log, oldest first.
func (s *profileService) WeightHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightLog, error) {
	return s.weightLogRepo.HistoryByUser(ctx, userID)
}

// LogNutrition adds the entry's macros onto the user's daily totals and
// returns the accumulated log for that date.
func (s *profileService) LogNutrition(ctx context.Context, userID primitive.ObjectID, entry domain.NutritionLog) (*domain.NutritionLog, error) {
	entry.UserID = userID
	if entry.LogDate.IsZero() {
		entry.LogDate = s.now().UTC()
	}
	return s.nutritionRepo.Accumulate(ctx, &entry)
}

// GetNutritionLog returns the user's totals for one calendar date, or zeroed
// totals when nothing was logged.
func (s *profileService) GetNutritionLog(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.NutritionLog, error) {
	log, err := s.nutritionRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			y, m, d := date.UTC().Date()
			return &domain.NutritionLog{
				UserID:  userID,
				LogDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			}, nil
		}
		return nil, err
	}
	return log, nil
}

// GetFullProfile assembles the dashboard view: stored profile with derived
// metrics, training streaks over the last year and the badge trophy case.
func (s *profileService) GetFullProfile(ctx context.Context, userID primitive.ObjectID) (*FullProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	activeDates, err := s.setRepo.ActiveDates(ctx, userID, today.AddDate(0, 0, -analytics.StreakLookbackDays))
	if err != nil {
		return nil, err
	}

	badges, err := s.badgeRepo.GroupsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &FullProfile{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Physical: *s.physicalStats(user, now),
		Streaks:  analytics.ComputeStreaks(activeDates, today),
		Badges:   badges,
	}, nil
}

// RequestPhotoUpload starts the two-step upload flow: it records a pending
// metadata row and hands back a presigned PUT URL. The photo only shows up
// in listings once the client confirms the upload.
func (s *profileService) RequestPhotoUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*PhotoUploadTicket, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectKey := fmt.Sprintf("progress-photos/%s/%s", userID.Hex(), uuid.NewString())

	now := s.now().UTC()
	photoID, err := s.photoRepo.Create(ctx, &domain.ProgressPhoto{
		UserID:      userID,
		ObjectKey:   objectKey,
		ContentType: contentType,
		Status:      domain.PhotoStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return &PhotoUploadTicket{
		PhotoID:   photoID,
		ObjectKey: objectKey,
		UploadURL: uploadURL,
	}, nil
}

// ConfirmPhotoUpload marks a pending photo as uploaded.
func (s *profileService) ConfirmPhotoUpload(ctx context.Context, userID, photoID primitive.ObjectID, fileName string, fileSize int64) error {
	err := s.photoRepo.Confirm(ctx, photoID, userID, fileName, fileSize)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPhotoNotFound
	}
	return err
}

// ListPhotos returns the user's confirmed photos, each with a fresh
// presigned download URL.
func (s *profileService) ListPhotos(ctx context.Context, userID primitive.ObjectID) ([]ProgressPhotoView, error) {
	photos, err := s.photoRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]ProgressPhotoView, 0, len(photos))
	for _, p := range photos {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, p.ObjectKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to generate download URL for photo %s: %w", p.ID.Hex(), err)
		}
		views = append(views, ProgressPhotoView{
			ID:          p.ID,
			FileName:    p.FileName,
			ContentType: p.ContentType,
			FileSize:    p.FileSize,
			CreatedAt:   p.CreatedAt,
			DownloadURL: url,
		})
	}
	return views, nil
}

// DeletePhoto removes the metadata row and then the stored object. The
// object delete happens second: an orphaned S3 object is recoverable, a
// dangling metadata row pointing at nothing is not.
func (s *profileService) DeletePhoto(ctx context.Context, userID, photoID primitive.ObjectID) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}
	if photo.UserID != userID {
		return ErrPhotoAccessDenied
	}

	if err := s.photoRepo.Delete(ctx, photoID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}

	if err := s.fileStorage.DeleteObject(ctx, photo.ObjectKey); err != nil {
		return fmt.Errorf("photo record deleted but object removal failed: %w", err)
	}
	return nil
}
