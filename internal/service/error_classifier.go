package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/DrNour/Nour-translation-app/internal/models"
)

// omissionRatio is the hypothesis/reference token-count threshold below
// which a translation is considered truncated.
const omissionRatio = 0.7

// ClassifyTranslationErrors applies the heuristic error rules to a
// reference/hypothesis pair. It is pure and deterministic: the same pair
// always yields the same tag set, in a fixed order.
//
// Known limitation: the lexical rule is a verbatim substring containment
// check. Tokens carrying punctuation ("word.") fail containment against a
// reference that lacks that exact substring, so the rule over-triggers on
// tokenization mismatches. The behavior is kept as-is because recorded tags
// must stay comparable across the submission history.
func ClassifyTranslationErrors(reference, hypothesis string) []models.ErrorTag {
	tags := make([]models.ErrorTag, 0, 3)

	refTokens := strings.Fields(reference)
	hypTokens := strings.Fields(hypothesis)

	if float64(len(hypTokens)) < omissionRatio*float64(len(refTokens)) {
		tags = append(tags, models.ErrorTagOmission)
	}

	// No tokens means no lexical mismatch to report.
	for _, token := range hypTokens {
		if !strings.Contains(reference, token) {
			tags = append(tags, models.ErrorTagLexicalChoice)
			break
		}
	}

	if hypothesis != "" {
		if first, _ := utf8.DecodeRuneInString(hypothesis); unicode.IsLower(first) {
			tags = append(tags, models.ErrorTagCapitalization)
		}
	}

	return tags
}
