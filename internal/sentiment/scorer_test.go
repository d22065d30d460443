package sentiment_test

import (
	"strings"
	"testing"

	"movie_reviews/internal/domain"
	"movie_reviews/internal/sentiment"
)

func TestScore_EmptyAndWhitespace(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n "} {
		got := sentiment.Score(text)
		if got.Label != domain.Neutral || got.Score != 0 {
			t.Errorf("Score(%q) = %+v, want neutral/0", text, got)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	text := "An amazing movie with a terrible ending, but overall great fun"
	first := sentiment.Score(text)
	for i := 0; i < 10; i++ {
		if got := sentiment.Score(text); got != first {
			t.Fatalf("run %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestScore_PositiveDominates(t *testing.T) {
	got := sentiment.Score("amazing fantastic wonderful movie")
	if got.Label != domain.Positive {
		t.Fatalf("label = %s, want positive", got.Label)
	}
	// 3 hits over 4 tokens: ratio 0.75, doubled and clamped to 1
	if got.Score != 1 {
		t.Fatalf("score = %v, want 1", got.Score)
	}
}

func TestScore_NegativeDominates(t *testing.T) {
	got := sentiment.Score("terrible awful boring mess")
	if got.Label != domain.Negative {
		t.Fatalf("label = %s, want negative", got.Label)
	}
	if got.Score != -1 {
		t.Fatalf("score = %v, want -1", got.Score)
	}
}

func TestScore_ThresholdIsStrict(t *testing.T) {
	// one positive hit over exactly 20 tokens: ratio == 0.05, which must
	// fall to the neutral branch because the comparison is strict
	at := "great" + strings.Repeat(" word", 19)
	if got := sentiment.Score(at); got.Label != domain.Neutral {
		t.Fatalf("ratio 0.05 exactly: label = %s, want neutral", got.Label)
	}

	// one positive hit over 19 tokens: ratio ~0.0526 crosses the threshold
	above := "great" + strings.Repeat(" word", 18)
	got := sentiment.Score(above)
	if got.Label != domain.Positive {
		t.Fatalf("ratio above 0.05: label = %s, want positive", got.Label)
	}
	if got.Score != 0.11 {
		t.Fatalf("score = %v, want 0.11", got.Score)
	}
}

func TestScore_NeutralScoreIsHalfDelta(t *testing.T) {
	// equal positive and negative counts keep the delta at zero
	got := sentiment.Score("great movie terrible pacing")
	if got.Label != domain.Neutral || got.Score != 0 {
		t.Fatalf("got %+v, want neutral/0", got)
	}
}
