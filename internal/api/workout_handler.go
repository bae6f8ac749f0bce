package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"titanlift/backend/internal/service"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

type StartWorkoutRequest struct {
	Name       string     `json:"name" binding:"max=100"`
	StartTime  *time.Time `json:"startTime"`
	TemplateID *string    `json:"templateId"`
}

type LogSetRequest struct {
	ExerciseID string   `json:"exerciseId" binding:"required"`
	WeightKG   float64  `json:"weightKg" binding:"required,gt=0"`
	Reps       int      `json:"reps" binding:"required,gt=0"`
	RPE        *float64 `json:"rpe" binding:"omitempty,gte=1,lte=10"`
}

// --- Handler Methods ---

// StartWorkout creates a new session for the authenticated user.
// POST /api/v1/workouts
func (h *WorkoutHandler) StartWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req StartWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var templateID *primitive.ObjectID
	if req.TemplateID != nil {
		id, err := primitive.ObjectIDFromHex(*req.TemplateID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid templateId format")
			return
		}
		templateID = &id
	}

	workout, err := h.workoutService.StartWorkout(c.Request.Context(), userID, req.Name, req.StartTime, templateID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to start workout")
		return
	}

	c.JSON(http.StatusCreated, workout)
}

// GetActiveWorkout returns the caller's in-progress session.
// GET /api/v1/workouts/active
func (h *WorkoutHandler) GetActiveWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	workout, err := h.workoutService.GetActiveWorkout(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveWorkout) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch active workout")
		}
		return
	}

	c.JSON(http.StatusOK, workout)
}

// LogSet records one set for a workout and reports whether it set any
// personal records.
// POST /api/v1/workouts/:id/sets
func (h *WorkoutHandler) LogSet(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req LogSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format")
		return
	}

	result, err := h.workoutService.LogSet(c.Request.Context(), userID, service.LogSetInput{
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		WeightKG:   req.WeightKG,
		Reps:       req.Reps,
		RPE:        req.RPE,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrWorkoutAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to log set")
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// FinishWorkout closes a session, returning the calorie estimate and any
// badges the workout earned.
// POST /api/v1/workouts/:id/finish
func (h *WorkoutHandler) FinishWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.workoutService.FinishWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrWorkoutAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrWorkoutAlreadyFinished):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to finish workout")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteSet removes a logged set.
// DELETE /api/v1/sets/:id
func (h *WorkoutHandler) DeleteSet(c *gin.Context) {
	setID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workoutService.DeleteSet(c.Request.Context(), setID); err != nil {
		if errors.Is(err, service.ErrSetNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete set")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ListRecentSets returns the newest logged sets.
// GET /api/v1/sets/recent
func (h *WorkoutHandler) ListRecentSets(c *gin.Context) {
	sets, err := h.workoutService.ListRecentSets(c.Request.Context(), 100)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch sets")
		return
	}
	c.JSON(http.StatusOK, sets)
}
