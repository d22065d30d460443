package domain

import "time"

// Overview is the single-pass aggregate over a review set. Averages are
// rounded to 2 decimals; an empty set yields the zero value, not an error.
type Overview struct {
	Total                 int     `json:"total"`
	Positive              int     `json:"positive"`
	Negative              int     `json:"negative"`
	Neutral               int     `json:"neutral"`
	AverageRating         float64 `json:"averageRating"`
	AverageSentimentScore float64 `json:"averageSentimentScore"`
}

// RatingBucket is one bar of the rating histogram.
type RatingBucket struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// SentimentCell is one (rating, sentiment) cell of the cross-tab.
type SentimentCell struct {
	Rating    int   `json:"rating"`
	Sentiment Label `json:"sentiment"`
	Count     int   `json:"count"`
}

// MovieRollup is a ranked per-movie summary. Grouping is by exact title
// string; titles differing only in case stay separate.
type MovieRollup struct {
	MovieTitle         string  `json:"movieTitle"`
	AverageRating      float64 `json:"averageRating"`
	ReviewCount        int     `json:"reviewCount"`
	PositiveCount      int     `json:"positiveCount"`
	NegativeCount      int     `json:"negativeCount"`
	PositivePercentage float64 `json:"positivePercentage"`
}

// MovieSearchHit is one result of the movie-title search.
type MovieSearchHit struct {
	MovieTitle    string    `json:"movieTitle"`
	ReviewCount   int       `json:"reviewCount"`
	AverageRating float64   `json:"averageRating"`
	LatestReview  time.Time `json:"latestReview"`
}

// Stats is the full statistics payload served by the stats endpoint.
type Stats struct {
	Overview           Overview        `json:"overview"`
	RatingDistribution []RatingBucket  `json:"ratingDistribution"`
	SentimentByRating  []SentimentCell `json:"sentimentByRating"`
	TopMovies          []MovieRollup   `json:"topMovies"`
}
