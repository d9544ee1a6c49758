// Package bleu implements the corpus-level BLEU metric on the 0-100 scale
// used by sacrebleu with its default settings: mteval-13a tokenization,
// n-gram orders 1 through 4, exponential smoothing for zero match counts and
// the standard brevity penalty. There is no effective-order fallback, so a
// hypothesis shorter than four tokens scores zero, exactly as
// sacrebleu.corpus_bleu does on a single sentence pair.
package bleu

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const maxOrder = 4

// Scorer computes corpus BLEU. It is stateless and safe for concurrent use.
type Scorer struct{}

// New returns a BLEU scorer.
func New() *Scorer {
	return &Scorer{}
}

// Score computes corpus BLEU for the hypotheses against their reference
// sets. references[i] holds the candidate references for hypotheses[i]; the
// submission pipeline calls it with single-element slices.
func (s *Scorer) Score(hypotheses []string, references [][]string) (float64, error) {
	if len(hypotheses) == 0 {
		return 0, fmt.Errorf("bleu: no hypotheses given")
	}
	if len(hypotheses) != len(references) {
		return 0, fmt.Errorf("bleu: %d hypotheses but %d reference sets", len(hypotheses), len(references))
	}

	var correct, total [maxOrder]int
	var hypLen, refLen int

	for i, hypothesis := range hypotheses {
		if len(references[i]) == 0 {
			return 0, fmt.Errorf("bleu: hypothesis %d has no references", i)
		}

		hypTokens := tokenize13a(hypothesis)
		hypLen += len(hypTokens)
		refLen += closestRefLength(len(hypTokens), references[i])

		for n := 1; n <= maxOrder; n++ {
			hypCounts := ngramCounts(hypTokens, n)
			maxRef := map[string]int{}
			for _, reference := range references[i] {
				for gram, count := range ngramCounts(tokenize13a(reference), n) {
					if count > maxRef[gram] {
						maxRef[gram] = count
					}
				}
			}

			for gram, count := range hypCounts {
				total[n-1] += count
				if clip := maxRef[gram]; clip > 0 {
					if count < clip {
						correct[n-1] += count
					} else {
						correct[n-1] += clip
					}
				}
			}
		}
	}

	return computeScore(correct, total, hypLen, refLen), nil
}

// computeScore folds the accumulated statistics into the final score using
// sacrebleu's "exp" smoothing: every order with zero matches halves the
// substituted precision again.
func computeScore(correct, total [maxOrder]int, hypLen, refLen int) float64 {
	var precisions [maxOrder]float64
	smooth := 1.0

	for n := 0; n < maxOrder; n++ {
		if total[n] == 0 {
			// Hypothesis shorter than the order; the log-precision sum
			// collapses the score to zero.
			return 0
		}
		if correct[n] == 0 {
			smooth *= 2
			precisions[n] = 100.0 / (smooth * float64(total[n]))
		} else {
			precisions[n] = 100.0 * float64(correct[n]) / float64(total[n])
		}
	}

	logSum := 0.0
	for _, p := range precisions {
		logSum += math.Log(p)
	}

	return brevityPenalty(hypLen, refLen) * math.Exp(logSum/maxOrder)
}

func brevityPenalty(hypLen, refLen int) float64 {
	if hypLen >= refLen {
		return 1
	}
	if hypLen == 0 {
		return 0
	}
	return math.Exp(1 - float64(refLen)/float64(hypLen))
}

// closestRefLength picks the reference length nearest the hypothesis length,
// preferring the shorter one on ties.
func closestRefLength(hypLen int, references []string) int {
	best := -1
	bestDiff := math.MaxInt
	for _, reference := range references {
		length := len(tokenize13a(reference))
		diff := length - hypLen
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff || (diff == bestDiff && length < best) {
			best = length
			bestDiff = diff
		}
	}
	return best
}

func ngramCounts(tokens []string, n int) map[string]int {
	counts := map[string]int{}
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], " ")]++
	}
	return counts
}

var (
	entityReplacer = strings.NewReplacer(
		"<skipped>", "",
		"-\n", "",
		"\n", " ",
		"&quot;", `"`,
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
	)
	// Punctuation classes from mteval-v13a: {-~, [-`, space-&, (-+, :-@ and /.
	punctPattern     = regexp.MustCompile(`([\x20-\x26\x28-\x2b\x2f\x3a-\x40\x5b-\x60\x7b-\x7e])`)
	periodAfter      = regexp.MustCompile(`([^0-9])([.,])`)
	periodBefore     = regexp.MustCompile(`([.,])([^0-9])`)
	dashAfterNumber  = regexp.MustCompile(`([0-9])(-)`)
)

// tokenize13a reproduces the mteval-v13a tokenizer: punctuation is split
// from adjacent text, with periods, commas and dashes kept attached to
// digits.
func tokenize13a(line string) []string {
	normalized := entityReplacer.Replace(line)
	normalized = punctPattern.ReplaceAllString(normalized, " $1 ")
	normalized = periodAfter.ReplaceAllString(normalized, "$1 $2 ")
	normalized = periodBefore.ReplaceAllString(normalized, " $1 $2")
	normalized = dashAfterNumber.ReplaceAllString(normalized, "$1 $2 ")
	return strings.Fields(normalized)
}
