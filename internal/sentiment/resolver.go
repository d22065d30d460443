package sentiment

import (
	"context"
	"math"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"movie_reviews/internal/adapters/observability"
	"movie_reviews/internal/domain"
)

// Resolver produces the final sentiment for a review. The external
// classifier, when configured, supplies the base result; the lexicon scorer
// is the guaranteed-available fallback. Exactly one of the two is used.
type Resolver struct {
	classifier domain.Classifier // nil when no credential is configured
	workers    int64
}

func NewResolver(c domain.Classifier) *Resolver {
	return &Resolver{classifier: c, workers: 4}
}

// Resolve returns the sentiment for text, applying the rating-consistency
// override when a rating is supplied. A high rating with a lexically
// negative comment (or the reverse) is collapsed to neutral rather than
// flipped: the signal is untrustworthy, not inverted.
func (r *Resolver) Resolve(ctx context.Context, text string, rating *int) domain.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return domain.SentimentResult{Label: domain.Neutral}
	}

	var res domain.SentimentResult
	source := "lexicon"
	resolved := false

	if r.classifier != nil {
		out, err := r.classifier.Classify(ctx, text)
		if err == nil {
			res, source, resolved = out, "classifier", true
		} else {
			log.Debug().Err(err).Msg("classifier unavailable, using lexicon scorer")
		}
	}
	if !resolved {
		res = Score(text)
	}

	if rating != nil {
		switch {
		case *rating >= 4 && res.Label == domain.Negative:
			res.Label = domain.Neutral
			res.Score = math.Max(res.Score, 0)
		case *rating <= 2 && res.Label == domain.Positive:
			res.Label = domain.Neutral
			res.Score = math.Min(res.Score, 0)
		}
	}

	observability.ObserveResolution(source, string(res.Label))
	return res
}

// ResolveBatch resolves each text independently. Results are returned in
// input order regardless of completion order.
func (r *Resolver) ResolveBatch(ctx context.Context, texts []string) []domain.SentimentResult {
	out := make([]domain.SentimentResult, len(texts))
	sem := semaphore.NewWeighted(r.workers)
	var wg sync.WaitGroup

	for i, t := range texts {
		if err := sem.Acquire(ctx, 1); err != nil {
			// context gone: the lexicon scorer still works without it
			out[i] = Score(t)
			continue
		}
		wg.Add(1)
		go func(i int, t string) {
			defer wg.Done()
			defer sem.Release(1)
			out[i] = r.Resolve(ctx, t, nil)
		}(i, t)
	}

	wg.Wait()
	return out
}
