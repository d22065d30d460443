package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound marks an unknown review id. Distinct from validation
	// failures and from unexpected internal errors.
	ErrNotFound = errors.New("review not found")

	// ErrInvalid wraps user-visible validation failures (bad request).
	ErrInvalid = errors.New("invalid input")

	// ErrClassifierUnavailable is the only error the external classifier
	// surfaces. Callers treat it as a cache miss, never as a failure.
	ErrClassifierUnavailable = errors.New("classifier unavailable")
)

// ReviewRepository is the persistence port for reviews.
// List with limit <= 0 returns all matching rows.
type ReviewRepository interface {
	Insert(ctx context.Context, r Review) error
	Update(ctx context.Context, r Review) error
	Delete(ctx context.Context, id string) (Review, error)
	GetByID(ctx context.Context, id string) (Review, error)
	List(ctx context.Context, f ReviewFilter, limit, offset int) ([]Review, error)
	Count(ctx context.Context, f ReviewFilter) (int, error)
	SearchMovies(ctx context.Context, pattern string, limit int) ([]MovieSearchHit, error)
}

// Classifier is the external text-classification port.
type Classifier interface {
	Classify(ctx context.Context, text string) (SentimentResult, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
