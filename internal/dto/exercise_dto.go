package dto

import (
	"time"

	"github.com/DrNour/Nour-translation-app/internal/models"
)

// ExerciseCreateRequest describes the payload for authoring an exercise.
type ExerciseCreateRequest struct {
	Title                string `json:"title" validate:"omitempty,max=255"`
	SourceText           string `json:"source_text" validate:"required"`
	ReferenceTranslation string `json:"reference_translation" validate:"required"`
	TargetLanguage       string `json:"target_language" validate:"omitempty,max=16"`
}

// ExerciseResponse is the instructor-facing view of an exercise, including
// the reference translation.
type ExerciseResponse struct {
	ID                   uint      `json:"id"`
	Title                string    `json:"title"`
	SourceText           string    `json:"source_text"`
	ReferenceTranslation string    `json:"reference_translation"`
	TargetLanguage       string    `json:"target_language"`
	CreatedBy            uint      `json:"created_by"`
	CreatedAt            time.Time `json:"created_at"`
}

// ExerciseSummary is the student-facing view: the reference translation is
// withheld so the task cannot be copied.
type ExerciseSummary struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	SourceText     string `json:"source_text"`
	TargetLanguage string `json:"target_language"`
}

// NewExerciseResponse converts an Exercise model into a DTO.
func NewExerciseResponse(model models.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:                   model.ID,
		Title:                model.Title,
		SourceText:           model.SourceText,
		ReferenceTranslation: model.ReferenceTranslation,
		TargetLanguage:       model.TargetLanguage,
		CreatedBy:            model.CreatedBy,
		CreatedAt:            model.CreatedAt,
	}
}

// NewExerciseResponseSlice converts exercise models into DTOs.
func NewExerciseResponseSlice(exercises []models.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, 0, len(exercises))
	for _, exercise := range exercises {
		responses = append(responses, NewExerciseResponse(exercise))
	}

	return responses
}

// Summary strips the response down to the student view.
func (r ExerciseResponse) Summary() ExerciseSummary {
	return ExerciseSummary{
		ID:             r.ID,
		Title:          r.Title,
		SourceText:     r.SourceText,
		TargetLanguage: r.TargetLanguage,
	}
}

// NewExerciseSummary converts an Exercise model into its student view.
func NewExerciseSummary(model models.Exercise) ExerciseSummary {
	return ExerciseSummary{
		ID:             model.ID,
		Title:          model.Title,
		SourceText:     model.SourceText,
		TargetLanguage: model.TargetLanguage,
	}
}

// NewExerciseSummarySlice converts exercise models into student views.
func NewExerciseSummarySlice(exercises []models.Exercise) []ExerciseSummary {
	summaries := make([]ExerciseSummary, 0, len(exercises))
	for _, exercise := range exercises {
		summaries = append(summaries, NewExerciseSummary(exercise))
	}

	return summaries
}
