package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/DrNour/Nour-translation-app/internal/models"
)

// SubmissionScoredEvent is published after a submission has been scored and
// stored, so downstream consumers (instructor notification feeds, analytics)
// can react without polling.
type SubmissionScoredEvent struct {
	SubmissionID         uint              `json:"submission_id"`
	ExerciseID           uint              `json:"exercise_id"`
	StudentID            uint              `json:"student_id"`
	ScoreBLEU            *float64          `json:"score_bleu,omitempty"`
	ScoreEmbeddingF1     *float64          `json:"score_embedding_f1,omitempty"`
	ScoreQualityEstimate *float64          `json:"score_quality_estimate,omitempty"`
	ErrorTags            []models.ErrorTag `json:"error_tags"`
	OccurredAt           time.Time         `json:"occurred_at"`
}

// SubmissionEventPublisher broadcasts scored submissions. Publishing is
// best-effort: the recorder logs failures but never rolls back a stored row.
type SubmissionEventPublisher interface {
	PublishScored(ctx context.Context, event SubmissionScoredEvent) error
}

type natsEventPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewNATSEventPublisher publishes scored-submission events to a NATS subject.
func NewNATSEventPublisher(conn *nats.Conn, subject string, logger zerolog.Logger) SubmissionEventPublisher {
	return &natsEventPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "submission_events").Logger(),
	}
}

func (p *natsEventPublisher) PublishScored(_ context.Context, event SubmissionScoredEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return err
	}

	p.logger.Debug().Uint("submission_id", event.SubmissionID).Str("subject", p.subject).Msg("submission event published")

	return nil
}
