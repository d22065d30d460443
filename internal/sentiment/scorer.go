package sentiment

import (
	"math"
	"regexp"
	"strings"

	"movie_reviews/internal/domain"
)

var tokenSplit = regexp.MustCompile(`\W+`)

// Score runs the rule-based lexical analysis. It is pure and deterministic:
// the same text always yields the same label and score.
//
// Tokens are produced by splitting the lowercased text on non-word runs,
// then counted against the positive and negative lexicons. A label wins its
// branch only when its ratio strictly exceeds both the other ratio and 0.05;
// anything else is neutral. Scores are clamped to [-1, 1] and rounded to
// 2 decimals.
func Score(text string) domain.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return domain.SentimentResult{Label: domain.Neutral}
	}

	words := tokenSplit.Split(strings.ToLower(text), -1)
	var pos, neg int
	for _, w := range words {
		if _, ok := positiveWords[w]; ok {
			pos++
		}
		if _, ok := negativeWords[w]; ok {
			neg++
		}
	}

	total := float64(len(words))
	posRatio := float64(pos) / total
	negRatio := float64(neg) / total

	switch {
	case posRatio > negRatio && posRatio > 0.05:
		return domain.SentimentResult{Label: domain.Positive, Score: round2(math.Min(posRatio*2, 1))}
	case negRatio > posRatio && negRatio > 0.05:
		return domain.SentimentResult{Label: domain.Negative, Score: round2(math.Max(-negRatio*2, -1))}
	default:
		return domain.SentimentResult{Label: domain.Neutral, Score: round2((posRatio - negRatio) * 0.5)}
	}
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
