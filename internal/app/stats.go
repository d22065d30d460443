package app

import (
	"context"
	"strings"
	"time"

	"movie_reviews/internal/domain"
)

// StatsService computes the statistics payload on demand. Nothing here is
// persisted; every call recomputes from the current review set (or serves a
// recent cached copy).
type StatsService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewStatsService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *StatsService {
	return &StatsService{repo: r, cache: c, cacheTTL: ttl}
}

// Stats returns overview, rating distribution, sentiment-by-rating cross-tab
// and the global top-movie ranking. movieTitle, when non-empty, scopes the
// first three (top movies stay global). fill selects the fixed 1..5
// histogram; without it, zero-count ratings are omitted.
func (s *StatsService) Stats(ctx context.Context, movieTitle string, fill bool) (domain.Stats, error) {
	key := statsKey(movieTitle, fill)
	var out domain.Stats
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	var f domain.ReviewFilter
	if t := strings.TrimSpace(movieTitle); t != "" {
		p := domain.TitlePattern(t)
		f.TitlePattern = &p
	}

	scoped, err := s.repo.List(ctx, f, 0, 0)
	if err != nil {
		return domain.Stats{}, err
	}

	st := domain.Stats{
		Overview:           Overview(scoped),
		RatingDistribution: RatingDistribution(scoped),
		SentimentByRating:  SentimentByRating(scoped),
	}
	if fill {
		st.RatingDistribution = FillRatingDistribution(st.RatingDistribution)
	}

	all := scoped
	if f.TitlePattern != nil {
		if all, err = s.repo.List(ctx, domain.ReviewFilter{}, 0, 0); err != nil {
			return domain.Stats{}, err
		}
	}
	st.TopMovies = TopMovies(all, 10)

	_ = s.cache.Set(ctx, key, st, int(s.cacheTTL.Seconds()))
	return st, nil
}
