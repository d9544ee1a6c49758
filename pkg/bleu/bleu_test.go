package bleu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreIdenticalPair(t *testing.T) {
	scorer := New()

	score, err := scorer.Score(
		[]string{"The cat sat on the mat"},
		[][]string{{"The cat sat on the mat"}},
	)
	require.NoError(t, err)
	require.InDelta(t, 100.0, score, 1e-9)
}

func TestScorePartialOverlap(t *testing.T) {
	scorer := New()

	// Five of six unigrams, 4/5 bigrams, 3/4 trigrams and 2/3 four-grams
	// match; geometric mean is 100*(1/3)^(1/4) with no brevity penalty.
	score, err := scorer.Score(
		[]string{"The cat sat on the rug"},
		[][]string{{"The cat sat on the mat"}},
	)
	require.NoError(t, err)
	require.InDelta(t, 75.984, score, 0.01)
}

func TestScoreShortHypothesisHasNoEffectiveOrder(t *testing.T) {
	scorer := New()

	// Three tokens cannot form a four-gram; corpus BLEU collapses to zero.
	score, err := scorer.Score(
		[]string{"the cat sat"},
		[][]string{{"The cat sat on the mat"}},
	)
	require.NoError(t, err)
	require.Zero(t, score)
}

func TestScoreEmptyHypothesis(t *testing.T) {
	scorer := New()

	score, err := scorer.Score(
		[]string{""},
		[][]string{{"The cat sat on the mat"}},
	)
	require.NoError(t, err)
	require.Zero(t, score)
}

func TestScoreExpSmoothingKeepsScorePositive(t *testing.T) {
	scorer := New()

	// Two unigrams match but no higher-order n-gram does; exp smoothing must
	// keep the score strictly between zero and the unigram precision.
	score, err := scorer.Score(
		[]string{"cat mat dog pig"},
		[][]string{{"The cat sat on the mat"}},
	)
	require.NoError(t, err)
	require.Greater(t, score, 0.0)
	require.Less(t, score, 50.0)
}

func TestScoreBrevityPenaltyApplies(t *testing.T) {
	scorer := New()

	long, err := scorer.Score(
		[]string{"The cat sat on the mat"},
		[][]string{{"The cat sat on the mat today"}},
	)
	require.NoError(t, err)

	require.Less(t, long, 100.0)
}

func TestScoreTokenizesPunctuation(t *testing.T) {
	scorer := New()

	// 13a splits the trailing period into its own token on both sides, so
	// punctuation alone must not break an otherwise perfect match.
	score, err := scorer.Score(
		[]string{"The cat sat on the mat."},
		[][]string{{"The cat sat on the mat."}},
	)
	require.NoError(t, err)
	require.InDelta(t, 100.0, score, 1e-9)
}

func TestScoreDeterministic(t *testing.T) {
	scorer := New()

	first, err := scorer.Score([]string{"a quick brown fox jumps"}, [][]string{{"the quick brown fox jumped"}})
	require.NoError(t, err)
	second, err := scorer.Score([]string{"a quick brown fox jumps"}, [][]string{{"the quick brown fox jumped"}})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestScoreInputValidation(t *testing.T) {
	scorer := New()

	_, err := scorer.Score(nil, nil)
	require.Error(t, err)

	_, err = scorer.Score([]string{"a"}, [][]string{})
	require.Error(t, err)

	_, err = scorer.Score([]string{"a"}, [][]string{{}})
	require.Error(t, err)
}
