package app

import (
	"fmt"
	"strings"

	"movie_reviews/internal/domain"
)

// Cache key scheme. Write paths delete the common variants (unfiltered
// first page, stats for the touched titles); everything else ages out via
// the TTL.

func listKey(q domain.ListQuery) string {
	f := q.Filter
	title, sent := "", ""
	min, max := 0, 0
	if f.TitlePattern != nil {
		title = *f.TitlePattern
	}
	if f.Sentiment != nil {
		sent = string(*f.Sentiment)
	}
	if f.MinRating != nil {
		min = *f.MinRating
	}
	if f.MaxRating != nil {
		max = *f.MaxRating
	}
	return fmt.Sprintf("reviews:%d:%d:%s:%s:%d:%d", q.Page, q.Limit, title, sent, min, max)
}

func defaultListKey() string {
	return listKey(domain.ListQuery{Page: 1, Limit: 10})
}

func statsKey(movieTitle string, fill bool) string {
	return fmt.Sprintf("stats:%s:%t", strings.TrimSpace(movieTitle), fill)
}

func searchKey(query string) string {
	return "search:" + strings.ToLower(strings.TrimSpace(query))
}
