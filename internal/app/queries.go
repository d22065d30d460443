package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"movie_reviews/internal/domain"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	searchLimit     = 10
	minSearchRunes  = 2
)

// QueryService serves the read paths, with redis-backed caching in front of
// the repository.
type QueryService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetReview(ctx context.Context, id string) (domain.Review, error) {
	return s.repo.GetByID(ctx, id)
}

// ListReviews returns one page of reviews, newest first, with pagination
// metadata computed against the filtered total.
func (s *QueryService) ListReviews(ctx context.Context, q domain.ListQuery) (domain.ReviewsPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}

	key := listKey(q)
	var out domain.ReviewsPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	items, err := s.repo.List(ctx, q.Filter, q.Limit, (q.Page-1)*q.Limit)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	total, err := s.repo.Count(ctx, q.Filter)
	if err != nil {
		return domain.ReviewsPage{}, err
	}

	totalPages := (total + q.Limit - 1) / q.Limit
	page := domain.ReviewsPage{
		Items: items,
		Pagination: domain.Pagination{
			CurrentPage:  q.Page,
			TotalPages:   totalPages,
			TotalReviews: total,
			HasNext:      q.Page < totalPages,
			HasPrev:      q.Page > 1,
		},
	}
	if page.Items == nil {
		page.Items = []domain.Review{}
	}

	// copy before caching so callers can't mutate the cached value
	cp := page
	cp.Items = make([]domain.Review, len(page.Items))
	copy(cp.Items, page.Items)

	// size guard
	if b, _ := json.Marshal(cp); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	}
	return page, nil
}

// SearchMovies groups matching titles with per-movie counts, average rating
// and latest review timestamp. Queries shorter than 2 characters after
// trimming are rejected as invalid.
func (s *QueryService) SearchMovies(ctx context.Context, query string) ([]domain.MovieSearchHit, error) {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < minSearchRunes {
		return nil, fmt.Errorf("%w: search query must be at least 2 characters long", domain.ErrInvalid)
	}

	key := searchKey(query)
	var out []domain.MovieSearchHit
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	hits, err := s.repo.SearchMovies(ctx, domain.TitlePattern(query), searchLimit)
	if err != nil {
		return nil, err
	}
	if hits == nil {
		hits = []domain.MovieSearchHit{}
	}
	_ = s.cache.Set(ctx, key, hits, int(s.cacheTTL.Seconds()))
	return hits, nil
}
