package dto

import (
	"encoding/json"
	"time"

	"github.com/DrNour/Nour-translation-app/internal/models"
)

// SubmissionCreateRequest describes the payload for submitting a
// translation. The translation text may be empty; an empty attempt is still
// scored and recorded.
type SubmissionCreateRequest struct {
	ExerciseID      uint   `json:"exercise_id" validate:"required,gt=0"`
	StudentID       uint   `json:"student_id" validate:"required,gt=0"`
	TranslationText string `json:"translation_text"`
}

// SubmissionFilter describes query string filters for listing submissions.
type SubmissionFilter struct {
	ExerciseID *uint `query:"exercise_id"`
	StudentID  *uint `query:"student_id"`
}

// SubmissionResponse is returned to API clients after scoring. A nil score
// means the metric was unavailable for this attempt, which is distinct from
// a measured zero.
type SubmissionResponse struct {
	ID                   uint              `json:"id"`
	ExerciseID           uint              `json:"exercise_id"`
	StudentID            uint              `json:"student_id"`
	TranslationText      string            `json:"translation_text"`
	ScoreBLEU            *float64          `json:"score_bleu,omitempty"`
	ScoreEmbeddingF1     *float64          `json:"score_embedding_f1,omitempty"`
	ScoreQualityEstimate *float64          `json:"score_quality_estimate,omitempty"`
	ErrorTags            []models.ErrorTag `json:"error_tags"`
	Badge                *models.Badge     `json:"badge,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:                   model.ID,
		ExerciseID:           model.ExerciseID,
		StudentID:            model.StudentID,
		TranslationText:      model.TranslationText,
		ScoreBLEU:            model.ScoreBLEU,
		ScoreEmbeddingF1:     model.ScoreEmbeddingF1,
		ScoreQualityEstimate: model.ScoreQualityEstimate,
		ErrorTags:            []models.ErrorTag{},
		CreatedAt:            model.CreatedAt,
	}

	if len(model.ErrorTags) > 0 {
		var tags []models.ErrorTag
		if err := json.Unmarshal(model.ErrorTags, &tags); err == nil && tags != nil {
			response.ErrorTags = tags
		}
	}

	if overall := model.OverallScore(); overall != nil {
		badge := models.AwardBadge(*overall)
		response.Badge = &badge
	}

	return response
}

// NewSubmissionResponseSlice converts submission models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
