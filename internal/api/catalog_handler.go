package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"titanlift/backend/internal/domain"
	"titanlift/backend/internal/service"
)

// CatalogHandler serves the exercise catalog and workout templates.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// --- Request/Response Structs ---

type CreateExerciseRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	MuscleGroup  string `json:"muscleGroup" binding:"required,max=50"`
	Equipment    string `json:"equipment" binding:"max=50"`
	AnimationURL string `json:"animationUrl" binding:"omitempty,url"`
	Description  string `json:"description" binding:"max=1000"`
}

type CreateTemplateRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type TemplateExerciseRequest struct {
	ExerciseID     string   `json:"exerciseId" binding:"required"`
	OrderIndex     int      `json:"orderIndex" binding:"gte=0"`
	TargetSets     int      `json:"targetSets" binding:"required,gt=0"`
	TargetReps     int      `json:"targetReps" binding:"required,gt=0"`
	TargetWeightKG *float64 `json:"targetWeightKg" binding:"omitempty,gt=0"`
}

type SetTemplateExercisesRequest struct {
	Exercises []TemplateExerciseRequest `json:"exercises" binding:"required,dive"`
}

// --- Handler Methods ---

// ListExercises returns the full catalog.
// GET /api/v1/exercises
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	exercises, err := h.catalogService.ListExercises(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// GetExercise returns one catalog entry.
// GET /api/v1/exercises/:id
func (h *CatalogHandler) GetExercise(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	exercise, err := h.catalogService.GetExercise(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch exercise")
		}
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// CreateExercise adds an entry to the catalog.
// POST /api/v1/exercises
func (h *CatalogHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.catalogService.CreateExercise(c.Request.Context(), domain.Exercise{
		Name:         req.Name,
		MuscleGroup:  req.MuscleGroup,
		Equipment:    req.Equipment,
		AnimationURL: req.AnimationURL,
		Description:  req.Description,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create exercise")
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// CreateTemplate creates an empty template for the caller.
// POST /api/v1/templates
func (h *CatalogHandler) CreateTemplate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	template, err := h.catalogService.CreateTemplate(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}
	c.JSON(http.StatusCreated, template)
}

// ListTemplates returns the caller's templates.
// GET /api/v1/templates
func (h *CatalogHandler) ListTemplates(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	templates, err := h.catalogService.ListTemplates(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplate returns one of the caller's templates.
// GET /api/v1/templates/:id
func (h *CatalogHandler) GetTemplate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	templateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	template, err := h.catalogService.GetTemplate(c.Request.Context(), userID, templateID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTemplateAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch template")
		}
		return
	}
	c.JSON(http.StatusOK, template)
}

// SetTemplateExercises replaces a template's planned exercises.
// PUT /api/v1/templates/:id/exercises
func (h *CatalogHandler) SetTemplateExercises(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	templateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetTemplateExercisesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercises := make([]domain.TemplateExercise, 0, len(req.Exercises))
	for _, e := range req.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(e.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format")
			return
		}
		exercises = append(exercises, domain.TemplateExercise{
			ExerciseID:     exerciseID,
			OrderIndex:     e.OrderIndex,
			TargetSets:     e.TargetSets,
			TargetReps:     e.TargetReps,
			TargetWeightKG: e.TargetWeightKG,
		})
	}

	template, err := h.catalogService.SetTemplateExercises(c.Request.Context(), userID, templateID, exercises)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTemplateAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update template")
		}
		return
	}
	c.JSON(http.StatusOK, template)
}
