package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/DrNour/Nour-translation-app/internal/dto"
	"github.com/DrNour/Nour-translation-app/internal/models"
	"github.com/DrNour/Nour-translation-app/internal/observability"
	"github.com/DrNour/Nour-translation-app/internal/repository"
)

var (
	// ErrExerciseNotFound indicates the referenced exercise does not exist.
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrStudentNotFound indicates the referenced account does not exist or
	// is not a student.
	ErrStudentNotFound = errors.New("student account not found")
	// ErrSubmissionNotFound indicates a submission could not be found.
	ErrSubmissionNotFound = errors.New("submission not found")
)

// SubmissionService runs the scoring-and-persistence pipeline: it freezes
// the submitted text, derives the quality signals and error tags, appends an
// immutable row and returns the composed record for display.
type SubmissionService interface {
	Create(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
	List(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error)
	GetByID(ctx context.Context, id uint) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	exercises   repository.ExerciseRepository
	accounts    repository.AccountRepository
	scoring     ScoringService
	events      SubmissionEventPublisher
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
}

// NewSubmissionService constructs a SubmissionService instance. The event
// publisher may be nil when no broker is configured.
func NewSubmissionService(
	submissions repository.SubmissionRepository,
	exercises repository.ExerciseRepository,
	accounts repository.AccountRepository,
	scoring ScoringService,
	events SubmissionEventPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissions: submissions,
		exercises:   exercises,
		accounts:    accounts,
		scoring:     scoring,
		events:      events,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "submission_service").Logger(),
	}
}

func (s *submissionService) Create(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	exercise, err := s.exercises.GetByID(ctx, payload.ExerciseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrExerciseNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	account, err := s.accounts.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrStudentNotFound
		}
		return dto.SubmissionResponse{}, err
	}
	if !account.IsStudent() {
		return dto.SubmissionResponse{}, ErrStudentNotFound
	}

	// The text is frozen here; scoring and classification both see exactly
	// what gets stored.
	translation := s.sanitizer.Sanitize(payload.TranslationText)

	record := s.scoring.Score(ctx, exercise.SourceText, translation, exercise.ReferenceTranslation, exercise.TargetLanguage)
	tags := ClassifyTranslationErrors(exercise.ReferenceTranslation, translation)

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to encode error tags: %w", err)
	}

	submission := models.Submission{
		ExerciseID:           exercise.ID,
		StudentID:            account.ID,
		TranslationText:      translation,
		ScoreBLEU:            record.BLEU,
		ScoreEmbeddingF1:     record.EmbeddingF1,
		ScoreQualityEstimate: record.QualityEstimate,
		ErrorTags:            datatypes.JSON(tagsJSON),
	}

	// One atomic insert; scoring already happened, so nothing blocks other
	// students while this row is written.
	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	observability.SubmissionsScored().Inc()
	s.logger.Info().
		Uint("submission_id", submission.ID).
		Uint("exercise_id", exercise.ID).
		Uint("student_id", account.ID).
		Bool("bleu", record.BLEU != nil).
		Bool("embedding_f1", record.EmbeddingF1 != nil).
		Bool("quality_estimate", record.QualityEstimate != nil).
		Int("error_tags", len(tags)).
		Msg("submission scored and recorded")

	s.publishScored(ctx, submission, tags)

	// The composed record is returned directly; callers render it without a
	// second read.
	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) publishScored(ctx context.Context, submission models.Submission, tags []models.ErrorTag) {
	if s.events == nil {
		return
	}

	event := SubmissionScoredEvent{
		SubmissionID:         submission.ID,
		ExerciseID:           submission.ExerciseID,
		StudentID:            submission.StudentID,
		ScoreBLEU:            submission.ScoreBLEU,
		ScoreEmbeddingF1:     submission.ScoreEmbeddingF1,
		ScoreQualityEstimate: submission.ScoreQualityEstimate,
		ErrorTags:            tags,
		OccurredAt:           time.Now().UTC(),
	}

	if err := s.events.PublishScored(ctx, event); err != nil {
		s.logger.Warn().Err(err).Uint("submission_id", submission.ID).Msg("failed to publish submission event")
	}
}

func (s *submissionService) List(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error) {
	repoFilter := repository.SubmissionFilter{
		ExerciseID: filter.ExerciseID,
		StudentID:  filter.StudentID,
	}

	submissions, err := s.submissions.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) GetByID(ctx context.Context, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}
