package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/DrNour/Nour-translation-app/internal/observability"
)

// Metric names used in logs and failure counters.
const (
	metricBLEU            = "bleu"
	metricEmbeddingF1     = "embedding_f1"
	metricQualityEstimate = "quality_estimate"
)

// ScoreRecord holds the independently-optional quality metrics computed for
// one submission. A nil field means the metric did not run; zero is a real
// score and the two are never conflated.
type ScoreRecord struct {
	BLEU            *float64
	EmbeddingF1     *float64
	QualityEstimate *float64
}

// NgramScorer computes a corpus-level n-gram overlap score on the 0-100
// scale. The pipeline calls it with single-element slices.
type NgramScorer interface {
	Score(hypotheses []string, references [][]string) (float64, error)
}

// EmbeddingScorer compares contextual embeddings of hypothesis and reference
// and reports per-pair precision, recall and F1.
type EmbeddingScorer interface {
	Score(ctx context.Context, hypotheses, references []string, language string) (precision, recall, f1 []float64, err error)
}

// QualitySegment is one record submitted to a quality estimator.
type QualitySegment struct {
	Source     string
	Hypothesis string
	Reference  string
}

// QualityEstimator predicts translation quality from source, hypothesis and
// (optionally) reference.
type QualityEstimator interface {
	Estimate(ctx context.Context, segments []QualitySegment) ([]float64, error)
}

// ScoringService derives the quality signals for a single translation
// attempt. Any metric may be unavailable; the record carries whatever subset
// succeeded and the pipeline never fails because a scorer did.
type ScoringService interface {
	Score(ctx context.Context, source, hypothesis, reference, language string) ScoreRecord
}

type scoringService struct {
	ngram         NgramScorer
	embeddings    EmbeddingScorer
	quality       QualityEstimator
	metricTimeout time.Duration
	logger        zerolog.Logger
}

// NewScoringService constructs the scoring adapter. Any scorer may be nil,
// in which case its metric is reported as absent.
func NewScoringService(ngram NgramScorer, embeddings EmbeddingScorer, quality QualityEstimator, metricTimeout time.Duration, logger zerolog.Logger) ScoringService {
	return &scoringService{
		ngram:         ngram,
		embeddings:    embeddings,
		quality:       quality,
		metricTimeout: metricTimeout,
		logger:        logger.With().Str("component", "scoring_service").Logger(),
	}
}

func (s *scoringService) Score(ctx context.Context, source, hypothesis, reference, language string) ScoreRecord {
	record := ScoreRecord{}

	record.BLEU = s.runMetric(ctx, metricBLEU, func(context.Context) (float64, error) {
		return s.scoreBLEU(hypothesis, reference)
	})
	record.EmbeddingF1 = s.runMetric(ctx, metricEmbeddingF1, func(metricCtx context.Context) (float64, error) {
		return s.scoreEmbeddings(metricCtx, hypothesis, reference, language)
	})
	record.QualityEstimate = s.runMetric(ctx, metricQualityEstimate, func(metricCtx context.Context) (float64, error) {
		return s.scoreQuality(metricCtx, source, hypothesis, reference)
	})

	return record
}

// runMetric executes one scorer under the configured timeout and converts
// any failure into an absent value. Failures are logged by metric name so
// operators can tell "unavailable" apart from "scored low".
func (s *scoringService) runMetric(ctx context.Context, name string, run func(context.Context) (float64, error)) *float64 {
	metricCtx := ctx
	if s.metricTimeout > 0 {
		var cancel context.CancelFunc
		metricCtx, cancel = context.WithTimeout(ctx, s.metricTimeout)
		defer cancel()
	}

	start := time.Now()
	value, err := run(metricCtx)
	observability.MetricDuration().WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, errScorerNotConfigured) {
			s.logger.Debug().Str("metric", name).Msg("scorer not configured, metric absent")
			return nil
		}

		observability.MetricFailures().WithLabelValues(name).Inc()
		s.logger.Warn().Err(err).Str("metric", name).Msg("metric unavailable, recording submission without it")
		return nil
	}

	return &value
}

var errScorerNotConfigured = errors.New("scorer not configured")

func (s *scoringService) scoreBLEU(hypothesis, reference string) (float64, error) {
	if s.ngram == nil {
		return 0, errScorerNotConfigured
	}

	return s.ngram.Score([]string{hypothesis}, [][]string{{reference}})
}

func (s *scoringService) scoreEmbeddings(ctx context.Context, hypothesis, reference, language string) (float64, error) {
	if s.embeddings == nil {
		return 0, errScorerNotConfigured
	}

	_, _, f1, err := s.embeddings.Score(ctx, []string{hypothesis}, []string{reference}, language)
	if err != nil {
		return 0, err
	}
	if len(f1) != 1 {
		return 0, fmt.Errorf("expected one f1 score, got %d", len(f1))
	}

	return f1[0], nil
}

func (s *scoringService) scoreQuality(ctx context.Context, source, hypothesis, reference string) (float64, error) {
	if s.quality == nil {
		return 0, errScorerNotConfigured
	}

	scores, err := s.quality.Estimate(ctx, []QualitySegment{{
		Source:     source,
		Hypothesis: hypothesis,
		Reference:  reference,
	}})
	if err != nil {
		return 0, err
	}
	if len(scores) != 1 {
		return 0, fmt.Errorf("expected one quality score, got %d", len(scores))
	}

	return scores[0], nil
}
