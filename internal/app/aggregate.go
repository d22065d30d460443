package app

import (
	"math"
	"sort"

	"movie_reviews/internal/domain"
)

// Overview aggregates a review set in a single pass: per-label counts plus
// rating and score averages rounded to 2 decimals. An empty set produces
// all-zero stats, not an error.
func Overview(reviews []domain.Review) domain.Overview {
	st := domain.Overview{Total: len(reviews)}
	if len(reviews) == 0 {
		return st
	}

	var ratingSum int
	var scoreSum float64
	for _, r := range reviews {
		switch r.Sentiment {
		case domain.Positive:
			st.Positive++
		case domain.Negative:
			st.Negative++
		default:
			st.Neutral++
		}
		ratingSum += r.Rating
		scoreSum += r.SentimentScore
	}

	n := float64(len(reviews))
	st.AverageRating = round2(float64(ratingSum) / n)
	st.AverageSentimentScore = round2(scoreSum / n)
	return st
}

// RatingDistribution counts reviews per rating, ascending. Ratings with no
// reviews are omitted; FillRatingDistribution produces the fixed 1..5 view.
func RatingDistribution(reviews []domain.Review) []domain.RatingBucket {
	counts := map[int]int{}
	for _, r := range reviews {
		counts[r.Rating]++
	}
	out := []domain.RatingBucket{}
	for rating := 1; rating <= 5; rating++ {
		if c, ok := counts[rating]; ok {
			out = append(out, domain.RatingBucket{Rating: rating, Count: c})
		}
	}
	return out
}

// FillRatingDistribution expands a sparse histogram to the fixed 1..5 range,
// reporting zero counts explicitly. This is the only place the zero-fill
// policy lives; callers ask for it, they never fill client-side.
func FillRatingDistribution(buckets []domain.RatingBucket) []domain.RatingBucket {
	counts := map[int]int{}
	for _, b := range buckets {
		counts[b.Rating] = b.Count
	}
	out := make([]domain.RatingBucket, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		out = append(out, domain.RatingBucket{Rating: rating, Count: counts[rating]})
	}
	return out
}

// SentimentByRating cross-tabulates (rating, sentiment) pairs, sorted by
// rating then sentiment name.
func SentimentByRating(reviews []domain.Review) []domain.SentimentCell {
	type key struct {
		rating    int
		sentiment domain.Label
	}
	counts := map[key]int{}
	for _, r := range reviews {
		counts[key{r.Rating, r.Sentiment}]++
	}

	out := []domain.SentimentCell{}
	for k, c := range counts {
		out = append(out, domain.SentimentCell{Rating: k.rating, Sentiment: k.sentiment, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating < out[j].Rating
		}
		return out[i].Sentiment < out[j].Sentiment
	})
	return out
}

// TopMovies groups by exact title string (case-sensitive, no normalization)
// and ranks rollups by average rating, then review count, both descending.
// limit <= 0 falls back to the default of 10.
func TopMovies(reviews []domain.Review, limit int) []domain.MovieRollup {
	if limit <= 0 {
		limit = 10
	}

	byTitle := map[string]*domain.MovieRollup{}
	ratingSums := map[string]int{}
	for _, r := range reviews {
		m, ok := byTitle[r.MovieTitle]
		if !ok {
			m = &domain.MovieRollup{MovieTitle: r.MovieTitle}
			byTitle[r.MovieTitle] = m
		}
		m.ReviewCount++
		ratingSums[r.MovieTitle] += r.Rating
		switch r.Sentiment {
		case domain.Positive:
			m.PositiveCount++
		case domain.Negative:
			m.NegativeCount++
		}
	}

	out := []domain.MovieRollup{}
	for title, m := range byTitle {
		m.AverageRating = round2(float64(ratingSums[title]) / float64(m.ReviewCount))
		m.PositivePercentage = round1(float64(m.PositiveCount) / float64(m.ReviewCount) * 100)
		out = append(out, *m)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageRating != out[j].AverageRating {
			return out[i].AverageRating > out[j].AverageRating
		}
		if out[i].ReviewCount != out[j].ReviewCount {
			return out[i].ReviewCount > out[j].ReviewCount
		}
		return out[i].MovieTitle < out[j].MovieTitle
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
func round1(f float64) float64 { return math.Round(f*10) / 10 }
