package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"titanlift/backend/internal/domain"
	"titanlift/backend/internal/repository"
	"titanlift/backend/internal/service"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- Request/Response Structs ---

// UpdateStatsRequest is a partial update; omitted fields keep their stored
// values.
type UpdateStatsRequest struct {
	HeightCM      *float64   `json:"heightCm" binding:"omitempty,gt=0"`
	WeightKG      *float64   `json:"weightKg" binding:"omitempty,gt=0"`
	Gender        *string    `json:"gender" binding:"omitempty,oneof=male female other"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	ActivityLevel *string    `json:"activityLevel" binding:"omitempty,oneof=sedentary light moderate active athlete"`
}

type LogNutritionRequest struct {
	LogDate    *time.Time `json:"logDate"`
	CaloriesIn int        `json:"caloriesIn" binding:"gte=0"`
	ProteinG   int        `json:"proteinG" binding:"gte=0"`
	CarbsG     int        `json:"carbsG" binding:"gte=0"`
	FatsG      int        `json:"fatsG" binding:"gte=0"`
}

type PhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"omitempty,oneof=image/jpeg image/png image/webp"`
}

type PhotoConfirmRequest struct {
	FileName string `json:"fileName" binding:"required,max=255"`
	FileSize int64  `json:"fileSize" binding:"required,gt=0"`
}

// --- Handler Methods ---

// GetStats returns the caller's physical profile with derived BMR/TDEE.
// GET /api/v1/profile/stats
func (h *ProfileHandler) GetStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	stats, err := h.profileService.GetPhysicalStats(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch physical stats")
		}
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UpdateStats applies a partial physical-profile update.
// PUT /api/v1/profile/stats
func (h *ProfileHandler) UpdateStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req UpdateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	stats, err := h.profileService.UpdatePhysicalStats(c.Request.Context(), userID, repository.PhysicalStatsUpdate{
		HeightCM:      req.HeightCM,
		WeightKG:      req.WeightKG,
		Gender:        req.Gender,
		DateOfBirth:   req.DateOfBirth,
		ActivityLevel: req.ActivityLevel,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update physical stats")
		}
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetFullProfile returns the dashboard view with streaks and badges.
// GET /api/v1/profile
func (h *ProfileHandler) GetFullProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profile, err := h.profileService.GetFullProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch profile")
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetWeightHistory returns the caller's weight log, oldest first.
// GET /api/v1/profile/weight-history
func (h *ProfileHandler) GetWeightHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	history, err := h.profileService.WeightHistory(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch weight history")
		return
	}
	c.JSON(http.StatusOK, history)
}

// LogNutrition adds macros onto the caller's daily totals.
// POST /api/v1/profile/nutrition
func (h *ProfileHandler) LogNutrition(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req LogNutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry := domain.NutritionLog{
		CaloriesIn: req.CaloriesIn,
		ProteinG:   req.ProteinG,
		CarbsG:     req.CarbsG,
		FatsG:      req.FatsG,
	}
	if req.LogDate != nil {
		entry.LogDate = *req.LogDate
	}
	log, err := h.profileService.LogNutrition(c.Request.Context(), userID, entry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to log nutrition")
		return
	}
	c.JSON(http.StatusOK, log)
}

// GetNutrition returns the caller's totals for one date (default today).
// GET /api/v1/profile/nutrition?date=2026-01-02
func (h *ProfileHandler) GetNutrition(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	log, err := h.profileService.GetNutritionLog(c.Request.Context(), userID, date)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch nutrition log")
		return
	}
	c.JSON(http.StatusOK, log)
}

// RequestPhotoUpload issues a presigned PUT URL for a new progress photo.
// POST /api/v1/profile/photos
func (h *ProfileHandler) RequestPhotoUpload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ticket, err := h.profileService.RequestPhotoUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create upload URL")
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// ConfirmPhotoUpload marks a pending photo as uploaded.
// POST /api/v1/profile/photos/:id/confirm
func (h *ProfileHandler) ConfirmPhotoUpload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	photoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PhotoConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.profileService.ConfirmPhotoUpload(c.Request.Context(), userID, photoID, req.FileName, req.FileSize); err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm upload")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPhotos returns the caller's confirmed photos with download URLs.
// GET /api/v1/profile/photos
func (h *ProfileHandler) ListPhotos(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	photos, err := h.profileService.ListPhotos(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch photos")
		return
	}
	c.JSON(http.StatusOK, photos)
}

// DeletePhoto removes a photo and its stored object.
// DELETE /api/v1/profile/photos/:id
func (h *ProfileHandler) DeletePhoto(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	photoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.DeletePhoto(c.Request.Context(), userID, photoID); err != nil {
		switch {
		case errors.Is(err, service.ErrPhotoNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPhotoAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete photo")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
