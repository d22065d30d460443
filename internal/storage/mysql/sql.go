package mysql

const insertReviewSQL = `
INSERT INTO reviews
  (id, movie_title, user_name, rating, comment, sentiment, sentiment_score, created_at, updated_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateReviewSQL = `
UPDATE reviews
SET movie_title = ?,
    user_name   = ?,
    rating      = ?,
    comment     = ?,
    sentiment   = ?,
    sentiment_score = ?,
    updated_at  = ?
WHERE id = ?
`

const deleteReviewSQL = `DELETE FROM reviews WHERE id = ?`

const reviewColumns = `
  id, movie_title, user_name, rating, comment, sentiment, sentiment_score, created_at, updated_at`

const getReviewSQL = `SELECT` + reviewColumns + `
FROM reviews
WHERE id = ?
`

// Newest first; aligns with the index on (movie_title, created_at).
const listReviewsPrefix = `SELECT` + reviewColumns + `
FROM reviews
`

const listReviewsOrder = ` ORDER BY created_at DESC, id DESC`

const countReviewsPrefix = `SELECT COUNT(*) FROM reviews`

// Grouping is by the exact title string; the movie_title column uses a
// binary collation so titles differing only in case stay separate groups.
// Case-insensitivity of the match comes from the (?i) flag inside the
// pattern built by domain.TitlePattern.
const searchMoviesSQL = `
SELECT
  movie_title,
  COUNT(*)             AS review_count,
  ROUND(AVG(rating),1) AS average_rating,
  MAX(created_at)      AS latest_review
FROM reviews
WHERE REGEXP_LIKE(movie_title, ?)
GROUP BY movie_title
ORDER BY review_count DESC, average_rating DESC
LIMIT ?
`
