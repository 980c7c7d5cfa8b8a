// Package analysis derives heuristic enrichment from experiment text and
// attributes. Nothing here is a model: every score is a fixed formula.
package analysis

import (
	"strings"
	"unicode"
)

const (
	complexityDivisor = 100
	minKeywordRunes   = 5
	maxKeywords       = 10
	maxValence        = 5
)

// TextAnalysis is the result of AnalyzeText.
type TextAnalysis struct {
	Sentiment  float64  `json:"sentiment"`
	Complexity float64  `json:"complexity"`
	Keywords   []string `json:"keywords"`
}

// AnalyzeText scores free text. Empty input yields a zero result; text
// without letters or digits still counts its words toward complexity.
//
// Sentiment is the mean lexicon valence per token scaled into [-1, 1].
// Complexity is the whitespace word count over 100. Keywords are the
// distinct case-folded tokens longer than four runes, in first-seen order,
// capped at ten.
func AnalyzeText(text string) TextAnalysis {
	result := TextAnalysis{
		Complexity: float64(len(strings.Fields(text))) / complexityDivisor,
		Keywords:   []string{},
	}

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return result
	}

	result.Sentiment = sentiment(tokens)
	result.Keywords = keywords(tokens)
	return result
}

// Tokenize splits text into lower-cased runs of letters and digits.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func sentiment(tokens []string) float64 {
	sum := 0
	for _, tok := range tokens {
		sum += lexicon[tok]
	}
	score := float64(sum) / float64(len(tokens)*maxValence)
	return clamp(score, -1, 1)
}

func keywords(tokens []string) []string {
	out := make([]string, 0, maxKeywords)
	seen := make(map[string]struct{}, maxKeywords)
	for _, tok := range tokens {
		if len(out) == maxKeywords {
			break
		}
		if len([]rune(tok)) < minKeywordRunes {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
