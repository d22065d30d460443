package mysql

import (
	"context"
	"database/sql"
	"strings"

	"movie_reviews/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// whereClause renders the filter as a WHERE fragment plus its args.
// Returns an empty string for the empty filter.
func whereClause(f domain.ReviewFilter) (string, []any) {
	var conds []string
	var args []any
	if f.TitlePattern != nil {
		conds = append(conds, "REGEXP_LIKE(movie_title, ?)")
		args = append(args, *f.TitlePattern)
	}
	if f.Sentiment != nil {
		conds = append(conds, "sentiment = ?")
		args = append(args, string(*f.Sentiment))
	}
	if f.MinRating != nil {
		conds = append(conds, "rating >= ?")
		args = append(args, *f.MinRating)
	}
	if f.MaxRating != nil {
		conds = append(conds, "rating <= ?")
		args = append(args, *f.MaxRating)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *Repo) Insert(ctx context.Context, rv domain.Review) error {
	_, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.ID,
		rv.MovieTitle,
		rv.UserName,
		rv.Rating,
		rv.Comment,
		string(rv.Sentiment),
		rv.SentimentScore,
		rv.CreatedAt,
		rv.UpdatedAt,
	)
	return err
}

func (r *Repo) Update(ctx context.Context, rv domain.Review) error {
	res, err := r.db.ExecContext(ctx, updateReviewSQL,
		rv.MovieTitle,
		rv.UserName,
		rv.Rating,
		rv.Comment,
		string(rv.Sentiment),
		rv.SentimentScore,
		rv.UpdatedAt,
		rv.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// MySQL reports 0 both for a missing row and for a no-op update;
		// confirm existence before reporting not found
		if _, gerr := r.GetByID(ctx, rv.ID); gerr != nil {
			return gerr
		}
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) (domain.Review, error) {
	rv, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	res, err := r.db.ExecContext(ctx, deleteReviewSQL, id)
	if err != nil {
		return domain.Review{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Review{}, domain.ErrNotFound
	}
	return rv, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (domain.Review, error) {
	row := r.db.QueryRowContext(ctx, getReviewSQL, id)
	rv, err := scanReview(row)
	if err == sql.ErrNoRows {
		return domain.Review{}, domain.ErrNotFound
	}
	return rv, err
}

func (r *Repo) List(ctx context.Context, f domain.ReviewFilter, limit, offset int) ([]domain.Review, error) {
	where, args := whereClause(f)
	q := listReviewsPrefix + where + listReviewsOrder
	if limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context, f domain.ReviewFilter) (int, error) {
	where, args := whereClause(f)
	var n int
	err := r.db.QueryRowContext(ctx, countReviewsPrefix+where, args...).Scan(&n)
	return n, err
}

func (r *Repo) SearchMovies(ctx context.Context, pattern string, limit int) ([]domain.MovieSearchHit, error) {
	rows, err := r.db.QueryContext(ctx, searchMoviesSQL, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MovieSearchHit
	for rows.Next() {
		var h domain.MovieSearchHit
		if err := rows.Scan(&h.MovieTitle, &h.ReviewCount, &h.AverageRating, &h.LatestReview); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dest ...any) error }

func scanReview(s scanner) (domain.Review, error) {
	var rv domain.Review
	var sentiment string
	err := s.Scan(
		&rv.ID,
		&rv.MovieTitle,
		&rv.UserName,
		&rv.Rating,
		&rv.Comment,
		&sentiment,
		&rv.SentimentScore,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		return domain.Review{}, err
	}
	rv.Sentiment = domain.Label(sentiment)
	return rv, nil
}
