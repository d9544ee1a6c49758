// Package embedsim scores translation pairs by the similarity of their
// contextual embeddings, using the OpenAI embeddings API as the encoder.
package embedsim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	embedDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "edutrans",
		Subsystem: "embedsim",
		Name:      "request_duration_seconds",
		Help:      "Duration of embedding similarity requests",
	}, []string{"model"})

	embedFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "edutrans",
		Subsystem: "embedsim",
		Name:      "request_failures_total",
		Help:      "Number of failed embedding similarity requests",
	}, []string{"model"})
)

// Config defines configuration options for the embedding scorer. BaseURL is
// optional and allows routing to an OpenAI-compatible endpoint.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Logger  zerolog.Logger
}

// Client scores hypothesis/reference pairs via embedding cosine similarity.
type Client struct {
	api    *openai.Client
	model  openai.EmbeddingModel
	tracer trace.Tracer
	logger zerolog.Logger
}

// New builds an embedding scorer from the provided configuration.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedsim: api key is required")
	}

	model := openai.EmbeddingModel(cfg.Model)
	if cfg.Model == "" {
		model = openai.SmallEmbedding3
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:    openai.NewClientWithConfig(apiConfig),
		model:  model,
		tracer: otel.Tracer("github.com/DrNour/Nour-translation-app/pkg/embedsim"),
		logger: cfg.Logger.With().Str("component", "embedsim").Logger(),
	}, nil
}

// Score returns per-pair precision, recall and F1 for the hypotheses against
// their references. The encoder embeds whole sentences, so the three slices
// carry the same cosine similarity: there is no token-level alignment that
// would make precision and recall diverge. The language hint is accepted for
// interface compatibility; the underlying models are multilingual.
func (c *Client) Score(ctx context.Context, hypotheses, references []string, language string) (precision, recall, f1 []float64, err error) {
	if len(hypotheses) == 0 || len(hypotheses) != len(references) {
		return nil, nil, nil, fmt.Errorf("embedsim: %d hypotheses against %d references", len(hypotheses), len(references))
	}

	ctx, span := c.tracer.Start(ctx, "embedsim.score", trace.WithAttributes(
		attribute.String("model", string(c.model)),
		attribute.Int("pairs", len(hypotheses)),
		attribute.String("language", language),
	))
	defer span.End()

	inputs := make([]string, 0, len(hypotheses)*2)
	inputs = append(inputs, hypotheses...)
	inputs = append(inputs, references...)

	start := time.Now()
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: inputs,
		Model: c.model,
	})
	embedDuration.WithLabelValues(string(c.model)).Observe(time.Since(start).Seconds())
	if err != nil {
		embedFailures.WithLabelValues(string(c.model)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "embedding request failed")
		return nil, nil, nil, fmt.Errorf("embedsim: embedding request: %w", err)
	}

	if len(resp.Data) != len(inputs) {
		embedFailures.WithLabelValues(string(c.model)).Inc()
		return nil, nil, nil, fmt.Errorf("embedsim: expected %d embeddings, got %d", len(inputs), len(resp.Data))
	}

	pairs := len(hypotheses)
	precision = make([]float64, pairs)
	recall = make([]float64, pairs)
	f1 = make([]float64, pairs)
	for i := 0; i < pairs; i++ {
		similarity := cosine(resp.Data[i].Embedding, resp.Data[pairs+i].Embedding)
		precision[i] = similarity
		recall[i] = similarity
		f1[i] = similarity
	}

	c.logger.Debug().Int("pairs", pairs).Msg("embedding similarity computed")

	return precision, recall, f1, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
