package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission is one immutable scored attempt by a student against an
// exercise. Rows are append-only: a resubmission for the same exercise
// creates a new row, never an update.
//
// Score fields are pointers because a metric that did not run must stay
// distinguishable from a metric that scored zero.
type Submission struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	ExerciseID           uint           `gorm:"not null;index" json:"exercise_id"`
	StudentID            uint           `gorm:"not null;index" json:"student_id"`
	TranslationText      string         `gorm:"type:text" json:"translation_text"`
	ScoreBLEU            *float64       `json:"score_bleu"`
	ScoreEmbeddingF1     *float64       `json:"score_embedding_f1"`
	ScoreQualityEstimate *float64       `json:"score_quality_estimate"`
	ErrorTags            datatypes.JSON `json:"error_tags"`
	CreatedAt            time.Time      `json:"created_at"`
}

// OverallScore returns the mean of the available metrics normalized to
// [0, 1], or nil when no metric ran. BLEU is rescaled from its 0-100 range
// and the quality estimate is clamped; embedding F1 already fits.
func (s Submission) OverallScore() *float64 {
	var sum float64
	var n int

	if s.ScoreBLEU != nil {
		sum += clamp01(*s.ScoreBLEU / 100)
		n++
	}
	if s.ScoreEmbeddingF1 != nil {
		sum += clamp01(*s.ScoreEmbeddingF1)
		n++
	}
	if s.ScoreQualityEstimate != nil {
		sum += clamp01(*s.ScoreQualityEstimate)
		n++
	}

	if n == 0 {
		return nil
	}

	overall := sum / float64(n)
	return &overall
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
