package domain

import (
	"regexp"
	"strings"
)

// TitlePattern builds the case-insensitive regex used for movie-title
// matching: the query must match at a word boundary or at the start of the
// title. User input is quoted first so metacharacters match literally.
// The same pattern source works for Go's regexp and MySQL's ICU REGEXP_LIKE.
func TitlePattern(query string) string {
	q := regexp.QuoteMeta(strings.TrimSpace(query))
	return `(?i)(\b` + q + `|^` + q + `)`
}
