package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestOverallScoreAveragesAvailableMetrics(t *testing.T) {
	submission := Submission{
		ScoreBLEU:            ptr(50),
		ScoreEmbeddingF1:     ptr(0.8),
		ScoreQualityEstimate: ptr(0.6),
	}

	overall := submission.OverallScore()
	require.NotNil(t, overall)
	require.InDelta(t, (0.5+0.8+0.6)/3, *overall, 1e-9)
}

func TestOverallScoreIgnoresAbsentMetrics(t *testing.T) {
	submission := Submission{ScoreEmbeddingF1: ptr(0.8)}

	overall := submission.OverallScore()
	require.NotNil(t, overall)
	require.InDelta(t, 0.8, *overall, 1e-9)
}

func TestOverallScoreNilWhenNoMetricRan(t *testing.T) {
	require.Nil(t, Submission{}.OverallScore())
}

func TestOverallScoreClampsOutliers(t *testing.T) {
	// A quality estimator can emit values outside [0, 1].
	submission := Submission{ScoreQualityEstimate: ptr(1.4)}

	overall := submission.OverallScore()
	require.NotNil(t, overall)
	require.InDelta(t, 1.0, *overall, 1e-9)

	submission = Submission{ScoreQualityEstimate: ptr(-0.2)}
	overall = submission.OverallScore()
	require.NotNil(t, overall)
	require.Zero(t, *overall)
}

func TestAwardBadgeThresholds(t *testing.T) {
	cases := []struct {
		overall float64
		want    Badge
	}{
		{0.95, BadgeGold},
		{0.9, BadgeSilver},
		{0.8, BadgeSilver},
		{0.75, BadgeBronze},
		{0.6, BadgeBronze},
		{0.5, BadgeTryAgain},
		{0.0, BadgeTryAgain},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, AwardBadge(tc.overall), "overall %v", tc.overall)
	}
}
