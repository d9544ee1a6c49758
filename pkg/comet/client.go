// Package comet provides a client for a COMET quality-estimation inference
// server. Model download and checkpoint caching are the server's concern;
// this client only submits segments and reads back scores.
package comet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

const defaultBatchSize = 8

// Segment is one record scored by the estimator. Reference may be empty for
// reference-free (QE-only) model classes.
type Segment struct {
	Source     string `json:"src"`
	Hypothesis string `json:"mt"`
	Reference  string `json:"ref,omitempty"`
}

// Config defines configuration options for the COMET client.
type Config struct {
	BaseURL    string
	BatchSize  int
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client talks to a COMET inference server over HTTP.
type Client struct {
	baseURL   string
	batchSize int
	http      *http.Client
	logger    zerolog.Logger
}

// New builds a COMET client from the provided configuration.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("comet: base url is required")
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		batchSize: batchSize,
		http:      httpClient,
		logger:    cfg.Logger.With().Str("component", "comet").Logger(),
	}, nil
}

type predictRequest struct {
	Data      []Segment `json:"data"`
	BatchSize int       `json:"batch_size"`
}

// predictResponse accepts both server variants: a scores array or a single
// score field.
type predictResponse struct {
	Score  *float64  `json:"score"`
	Scores []float64 `json:"scores"`
}

// Estimate posts the segments to the inference server and returns one
// quality score per segment, in input order.
func (c *Client) Estimate(ctx context.Context, segments []Segment) ([]float64, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("comet: no segments given")
	}

	body, err := json.Marshal(predictRequest{Data: segments, BatchSize: c.batchSize})
	if err != nil {
		return nil, fmt.Errorf("comet: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("comet: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("comet: predict request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("comet: server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("comet: decode response: %w", err)
	}

	scores := decoded.Scores
	if len(scores) == 0 && decoded.Score != nil {
		scores = []float64{*decoded.Score}
	}

	if len(scores) != len(segments) {
		return nil, fmt.Errorf("comet: expected %d scores, got %d", len(segments), len(scores))
	}

	c.logger.Debug().Int("segments", len(segments)).Msg("quality estimates received")

	return scores, nil
}
