package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"movie_reviews/internal/domain"
	"movie_reviews/internal/sentiment"
)

// ReviewService handles the write paths. Every create or sentiment-relevant
// update runs the resolver, so a stored review's sentiment fields are always
// consistent with its (comment, rating) pair.
type ReviewService struct {
	repo     domain.ReviewRepository
	resolver *sentiment.Resolver
	cache    domain.Cache
	validate *validator.Validate
}

func NewReviewService(repo domain.ReviewRepository, r *sentiment.Resolver, cache domain.Cache) *ReviewService {
	return &ReviewService{repo: repo, resolver: r, cache: cache, validate: validator.New()}
}

func (s *ReviewService) Create(ctx context.Context, in domain.CreateReviewInput) (domain.Review, error) {
	in.MovieTitle = strings.TrimSpace(in.MovieTitle)
	in.UserName = strings.TrimSpace(in.UserName)
	in.Comment = strings.TrimSpace(in.Comment)
	if err := s.validate.Struct(in); err != nil {
		return domain.Review{}, fmt.Errorf("%w: %v", domain.ErrInvalid, err)
	}

	res := s.resolver.Resolve(ctx, in.Comment, &in.Rating)

	now := time.Now().UTC()
	rv := domain.Review{
		ID:             uuid.NewString(),
		MovieTitle:     in.MovieTitle,
		UserName:       in.UserName,
		Rating:         in.Rating,
		Comment:        in.Comment,
		Sentiment:      res.Label,
		SentimentScore: res.Score,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Insert(ctx, rv); err != nil {
		return domain.Review{}, err
	}
	s.invalidate(ctx, rv.MovieTitle)
	return rv, nil
}

func (s *ReviewService) Update(ctx context.Context, id string, in domain.UpdateReviewInput) (domain.Review, error) {
	if err := s.validate.Struct(in); err != nil {
		return domain.Review{}, fmt.Errorf("%w: %v", domain.ErrInvalid, err)
	}

	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	oldTitle := rv.MovieTitle

	// empty-after-trim fields count as not supplied
	if in.MovieTitle != nil {
		if t := strings.TrimSpace(*in.MovieTitle); t != "" {
			rv.MovieTitle = t
		}
	}
	if in.UserName != nil {
		if u := strings.TrimSpace(*in.UserName); u != "" {
			rv.UserName = u
		}
	}
	resent := false
	if in.Rating != nil {
		rv.Rating = *in.Rating
		resent = true
	}
	if in.Comment != nil {
		if c := strings.TrimSpace(*in.Comment); c != "" {
			rv.Comment = c
			resent = true
		}
	}

	// sentiment follows the post-patch comment and rating
	if resent {
		res := s.resolver.Resolve(ctx, rv.Comment, &rv.Rating)
		rv.Sentiment = res.Label
		rv.SentimentScore = res.Score
	}

	rv.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, rv); err != nil {
		return domain.Review{}, err
	}
	s.invalidate(ctx, oldTitle, rv.MovieTitle)
	return rv, nil
}

func (s *ReviewService) Delete(ctx context.Context, id string) (domain.Review, error) {
	rv, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	s.invalidate(ctx, rv.MovieTitle)
	return rv, nil
}

// invalidate drops the cache variants most likely to serve stale data:
// the unfiltered first page and the stats keys for the touched titles.
// Less common keys age out via the TTL.
func (s *ReviewService) invalidate(ctx context.Context, titles ...string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, defaultListKey())
	_ = s.cache.Del(ctx, statsKey("", false))
	_ = s.cache.Del(ctx, statsKey("", true))
	seen := map[string]bool{}
	for _, t := range titles {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		_ = s.cache.Del(ctx, statsKey(t, false))
		_ = s.cache.Del(ctx, statsKey(t, true))
		_ = s.cache.Del(ctx, searchKey(t))
	}
}
