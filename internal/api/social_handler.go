package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"titanlift/backend/internal/analytics"
	"titanlift/backend/internal/service"
)

// SocialHandler holds the social service dependency.
type SocialHandler struct {
	socialService service.SocialService
}

// NewSocialHandler creates a new SocialHandler.
func NewSocialHandler(socialService service.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

// --- Request/Response Structs ---

type UpdateSocialProfileRequest struct {
	Bio       string `json:"bio" binding:"max=500"`
	Instagram string `json:"instagram" binding:"max=100"`
	Twitter   string `json:"twitter" binding:"max=100"`
}

// --- Handler Methods ---

// GetLeaderboard ranks users by lifted volume.
// GET /api/v1/leaderboard?window=weekly&muscleGroup=Chest
func (h *SocialHandler) GetLeaderboard(c *gin.Context) {
	window := analytics.TimeWindow(c.DefaultQuery("window", string(analytics.WindowAll)))
	switch window {
	case analytics.WindowAll, analytics.WindowWeekly, analytics.WindowMonthly:
	default:
		abortWithError(c, http.StatusBadRequest, "Invalid window, expected all, weekly or monthly")
		return
	}

	entries, err := h.socialService.Leaderboard(c.Request.Context(), analytics.LeaderboardFilter{
		Window:      window,
		MuscleGroup: c.Query("muscleGroup"),
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute leaderboard")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Follow makes the caller follow another user. Idempotent.
// POST /api/v1/social/follow/:id
func (h *SocialHandler) Follow(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.socialService.Follow(c.Request.Context(), callerID, targetID); err != nil {
		switch {
		case errors.Is(err, service.ErrCannotFollowSelf):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to follow user")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// Unfollow removes the follow edge if present.
// DELETE /api/v1/social/follow/:id
func (h *SocialHandler) Unfollow(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.socialService.Unfollow(c.Request.Context(), callerID, targetID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to unfollow user")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProfile returns a user's public profile with follow stats.
// GET /api/v1/social/users/:id
func (h *SocialHandler) GetProfile(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.socialService.GetProfile(c.Request.Context(), callerID, targetID)
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

// UpdateProfile replaces the caller's bio and handles.
// PUT /api/v1/social/profile
func (h *SocialHandler) UpdateProfile(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req UpdateSocialProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.socialService.UpdateSocialProfile(c.Request.Context(), callerID, req.Bio, req.Instagram, req.Twitter); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchUsers finds accounts by username.
// GET /api/v1/social/search?q=term
func (h *SocialHandler) SearchUsers(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profiles, err := h.socialService.SearchUsers(c.Request.Context(), callerID, c.Query("q"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to search users")
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetWorkoutHistory lists a user's finished workouts with aggregates.
// GET /api/v1/social/users/:id/history?limit=20
func (h *SocialHandler) GetWorkoutHistory(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	history, err := h.socialService.WorkoutHistory(c.Request.Context(), targetID, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch workout history")
		return
	}
	c.JSON(http.StatusOK, history)
}

// GetBadges returns a user's trophy case.
// GET /api/v1/social/users/:id/badges
func (h *SocialHandler) GetBadges(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	badges, err := h.socialService.BadgesByUser(c.Request.Context(), targetID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch badges")
		return
	}
	c.JSON(http.StatusOK, badges)
}
