package app_test

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"movie_reviews/internal/domain"
)

// fakeRepo is an in-memory ReviewRepository good enough for service tests.
// Listing sorts newest first to match the real repository's order.
type fakeRepo struct {
	reviews     map[string]domain.Review
	listCalls   int
	searchCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reviews: map[string]domain.Review{}}
}

func (r *fakeRepo) Insert(_ context.Context, rv domain.Review) error {
	r.reviews[rv.ID] = rv
	return nil
}

func (r *fakeRepo) Update(_ context.Context, rv domain.Review) error {
	if _, ok := r.reviews[rv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.reviews[rv.ID] = rv
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) (domain.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	delete(r.reviews, id)
	return rv, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (domain.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	return rv, nil
}

func (r *fakeRepo) matches(rv domain.Review, f domain.ReviewFilter) bool {
	if f.Sentiment != nil && rv.Sentiment != *f.Sentiment {
		return false
	}
	if f.MinRating != nil && rv.Rating < *f.MinRating {
		return false
	}
	if f.MaxRating != nil && rv.Rating > *f.MaxRating {
		return false
	}
	if f.TitlePattern != nil && !strings.Contains(strings.ToLower(rv.MovieTitle), strings.ToLower(titleQueryOf(*f.TitlePattern))) {
		return false
	}
	return true
}

// titleQueryOf recovers a plain substring from a TitlePattern for the fake's
// contains-matching. Tests only use patterns built from literal queries.
func titleQueryOf(pattern string) string {
	s := strings.TrimPrefix(pattern, `(?i)(\b`)
	if i := strings.Index(s, "|^"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, `\`, "")
}

func (r *fakeRepo) List(_ context.Context, f domain.ReviewFilter, limit, offset int) ([]domain.Review, error) {
	r.listCalls++
	var out []domain.Review
	for _, rv := range r.reviews {
		if r.matches(rv, f) {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) Count(_ context.Context, f domain.ReviewFilter) (int, error) {
	n := 0
	for _, rv := range r.reviews {
		if r.matches(rv, f) {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) SearchMovies(_ context.Context, pattern string, limit int) ([]domain.MovieSearchHit, error) {
	r.searchCalls++
	byTitle := map[string]*domain.MovieSearchHit{}
	sum := map[string]int{}
	q := titleQueryOf(pattern)
	for _, rv := range r.reviews {
		if !strings.Contains(strings.ToLower(rv.MovieTitle), strings.ToLower(q)) {
			continue
		}
		h, ok := byTitle[rv.MovieTitle]
		if !ok {
			h = &domain.MovieSearchHit{MovieTitle: rv.MovieTitle, LatestReview: rv.CreatedAt}
			byTitle[rv.MovieTitle] = h
		}
		h.ReviewCount++
		sum[rv.MovieTitle] += rv.Rating
		if rv.CreatedAt.After(h.LatestReview) {
			h.LatestReview = rv.CreatedAt
		}
	}
	var out []domain.MovieSearchHit
	for title, h := range byTitle {
		h.AverageRating = float64(sum[title]) / float64(h.ReviewCount)
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReviewCount != out[j].ReviewCount {
			return out[i].ReviewCount > out[j].ReviewCount
		}
		return out[i].AverageRating > out[j].AverageRating
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeCache is a map-backed Cache that records deleted keys.
type fakeCache struct {
	data    map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	delete(c.data, key)
	c.deleted = append(c.deleted, key)
	return nil
}
