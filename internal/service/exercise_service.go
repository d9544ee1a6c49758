package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/DrNour/Nour-translation-app/internal/dto"
	"github.com/DrNour/Nour-translation-app/internal/models"
	"github.com/DrNour/Nour-translation-app/internal/repository"
)

// ErrInstructorNotFound indicates the creating account does not exist or is
// not an instructor.
var ErrInstructorNotFound = errors.New("instructor account not found")

// ExerciseService manages instructor-authored exercises.
type ExerciseService interface {
	Create(ctx context.Context, payload dto.ExerciseCreateRequest, createdBy uint) (dto.ExerciseResponse, error)
	List(ctx context.Context) ([]dto.ExerciseResponse, error)
	GetByID(ctx context.Context, id uint) (dto.ExerciseResponse, error)
}

type exerciseService struct {
	exercises repository.ExerciseRepository
	accounts  repository.AccountRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewExerciseService constructs an ExerciseService instance.
func NewExerciseService(exercises repository.ExerciseRepository, accounts repository.AccountRepository, validate *validator.Validate, logger zerolog.Logger) ExerciseService {
	return &exerciseService{
		exercises: exercises,
		accounts:  accounts,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "exercise_service").Logger(),
	}
}

func (s *exerciseService) Create(ctx context.Context, payload dto.ExerciseCreateRequest, createdBy uint) (dto.ExerciseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExerciseResponse{}, err
	}

	account, err := s.accounts.GetByID(ctx, createdBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExerciseResponse{}, ErrInstructorNotFound
		}
		return dto.ExerciseResponse{}, err
	}
	if !account.IsInstructor() {
		return dto.ExerciseResponse{}, ErrInstructorNotFound
	}

	exercise := models.Exercise{
		Title:                s.sanitizer.Sanitize(payload.Title),
		SourceText:           s.sanitizer.Sanitize(payload.SourceText),
		ReferenceTranslation: s.sanitizer.Sanitize(payload.ReferenceTranslation),
		TargetLanguage:       payload.TargetLanguage,
		CreatedBy:            account.ID,
	}

	if err := s.exercises.Create(ctx, &exercise); err != nil {
		return dto.ExerciseResponse{}, err
	}

	s.logger.Info().Uint("exercise_id", exercise.ID).Uint("created_by", account.ID).Msg("exercise created")

	return dto.NewExerciseResponse(exercise), nil
}

func (s *exerciseService) List(ctx context.Context) ([]dto.ExerciseResponse, error) {
	exercises, err := s.exercises.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewExerciseResponseSlice(exercises), nil
}

func (s *exerciseService) GetByID(ctx context.Context, id uint) (dto.ExerciseResponse, error) {
	exercise, err := s.exercises.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExerciseResponse{}, ErrExerciseNotFound
		}
		return dto.ExerciseResponse{}, err
	}

	return dto.NewExerciseResponse(exercise), nil
}
