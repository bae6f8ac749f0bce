package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"titanlift/backend/internal/domain"
	"titanlift/backend/internal/repository"
)

// --- Error Definitions ---
var (
	ErrTemplateNotFound     = errors.New("workout template not found")
	ErrTemplateAccessDenied = errors.New("workout template does not belong to this user")
)

// CatalogService serves the exercise catalog and per-user workout templates.
type CatalogService interface {
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	GetExercise(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	CreateExercise(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error)

	CreateTemplate(ctx context.Context, userID primitive.ObjectID, name, description string) (*domain.WorkoutTemplate, error)
	GetTemplate(ctx context.Context, userID, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error)
	ListTemplates(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error)
	SetTemplateExercises(ctx context.Context, userID, templateID primitive.ObjectID, exercises []domain.TemplateExercise) (*domain.WorkoutTemplate, error)
}

// catalogService implements the CatalogService interface.
type catalogService struct {
	exerciseRepo repository.ExerciseRepository
	templateRepo repository.TemplateRepository
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(exerciseRepo repository.ExerciseRepository, templateRepo repository.TemplateRepository) CatalogService {
	return &catalogService{
		exerciseRepo: exerciseRepo,
		templateRepo: templateRepo,
	}
}

// ListExercises returns the full global catalog.
func (s *catalogService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

// GetExercise looks up one catalog entry.
func (s *catalogService) GetExercise(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// CreateExercise adds an entry to the global catalog.
func (s *catalogService) CreateExercise(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" || exercise.MuscleGroup == "" {
		return nil, errors.New("exercise name and muscle group are required")
	}
	id, err := s.exerciseRepo.Create(ctx, &exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = id
	return &exercise, nil
}

// CreateTemplate creates an empty template owned by the caller.
func (s *catalogService) CreateTemplate(ctx context.Context, userID primitive.ObjectID, name, description string) (*domain.WorkoutTemplate, error) {
	if name == "" {
		return nil, errors.New("template name is required")
	}
	template := &domain.WorkoutTemplate{
		UserID:      userID,
		Name:        name,
		Description: description,
	}
	id, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return nil, err
	}
	template.ID = id
	return template, nil
}

// GetTemplate returns one of the caller's templates.
func (s *catalogService) GetTemplate(ctx context.Context, userID, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.UserID != userID {
		return nil, ErrTemplateAccessDenied
	}
	return template, nil
}

// ListTemplates returns all templates owned by the caller.
func (s *catalogService) ListTemplates(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	return s.templateRepo.ListByUser(ctx, userID)
}

// SetTemplateExercises replaces a template's planned exercises wholesale.
// Every referenced exercise must exist in the catalog.
func (s *catalogService) SetTemplateExercises(ctx context.Context, userID, templateID primitive.ObjectID, exercises []domain.TemplateExercise) (*domain.WorkoutTemplate, error) {
	for _, e := range exercises {
		if _, err := s.exerciseRepo.GetByID(ctx, e.ExerciseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
	}

	if err := s.templateRepo.SetExercises(ctx, templateID, userID, exercises); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return s.GetTemplate(ctx, userID, templateID)
}
