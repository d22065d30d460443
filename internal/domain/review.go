package domain

import "time"

// Label is one of the three sentiment classes a review can carry.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// ValidLabel reports whether s names a known sentiment class.
func ValidLabel(s string) bool {
	switch Label(s) {
	case Positive, Negative, Neutral:
		return true
	}
	return false
}

// SentimentResult is the transient outcome of resolving a piece of text.
// Confidence is only set when an external classifier supplied the result.
type SentimentResult struct {
	Label      Label    `json:"sentiment"`
	Score      float64  `json:"score"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Review is one user submission. Sentiment and SentimentScore are derived
// from (Comment, Rating) and are never edited independently.
type Review struct {
	ID             string    `json:"id"`
	MovieTitle     string    `json:"movieTitle"`
	UserName       string    `json:"userName"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment"`
	Sentiment      Label     `json:"sentiment"`
	SentimentScore float64   `json:"sentimentScore"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateReviewInput is the payload for submitting a review.
type CreateReviewInput struct {
	MovieTitle string `json:"movieTitle" validate:"required,max=200"`
	UserName   string `json:"userName" validate:"required,max=100"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string `json:"comment" validate:"required,max=1000"`
}

// UpdateReviewInput patches a review; nil fields are left untouched.
// Sentiment is re-resolved only when Comment or Rating is supplied.
type UpdateReviewInput struct {
	MovieTitle *string `json:"movieTitle" validate:"omitempty,max=200"`
	UserName   *string `json:"userName" validate:"omitempty,max=100"`
	Rating     *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment    *string `json:"comment" validate:"omitempty,max=1000"`
}

// ReviewFilter narrows listing and aggregation queries.
// TitlePattern is a regex built by TitlePattern(); Sentiment is an exact
// match; rating bounds are inclusive.
type ReviewFilter struct {
	TitlePattern *string
	Sentiment    *Label
	MinRating    *int
	MaxRating    *int
}

// ListQuery is a paginated, filtered review listing request.
type ListQuery struct {
	Filter ReviewFilter
	Page   int
	Limit  int
}

type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalReviews int  `json:"totalReviews"`
	HasNext      bool `json:"hasNext"`
	HasPrev      bool `json:"hasPrev"`
}

type ReviewsPage struct {
	Items      []Review   `json:"items"`
	Pagination Pagination `json:"pagination"`
}
