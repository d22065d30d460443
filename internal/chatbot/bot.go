// Package chatbot implements a keyword-driven assistant that answers
// questions about the review corpus using the query and stats services.
package chatbot

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"movie_reviews/internal/app"
	"movie_reviews/internal/domain"
)

// Intent is the classified type of a user message.
type Intent string

const (
	IntentGreeting        Intent = "greeting"
	IntentSentiment       Intent = "sentiment_analysis"
	IntentGeneralStats    Intent = "general_stats"
	IntentMovieStats      Intent = "movie_stats"
	IntentRecommendations Intent = "recommendations"
	IntentReviewSearch    Intent = "review_search"
	IntentGeneral         Intent = "general"
)

// Message is one turn of the conversation.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Bot holds the services it answers from and an in-memory conversation
// history. Safe for concurrent use.
type Bot struct {
	queries *app.QueryService
	stats   *app.StatsService

	mu      sync.Mutex
	history []Message
}

func New(q *app.QueryService, s *app.StatsService) *Bot {
	return &Bot{queries: q, stats: s}
}

// titlePatterns are tried in order; the first non-empty trimmed capture wins.
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)sentiment.*?(?:of|for)\s+["']?([^"'?` + "\n" + `,.!]+)["']?`),
	regexp.MustCompile(`(?i)about\s+["']?([^"'?` + "\n" + `,.!]+)["']?`),
	regexp.MustCompile(`(?i)reviews.*?(?:of|for)\s+["']?([^"'?` + "\n" + `,.!]+)["']?`),
	regexp.MustCompile(`(?i)movie\s+["']?([^"'?` + "\n" + `,.!]+)["']?`),
	regexp.MustCompile(`["']([^"']+)["']`),
}

// ExtractTitle pulls a movie title out of a free-form message. Returns ""
// when no pattern captures anything.
func ExtractTitle(message string) string {
	for _, p := range titlePatterns {
		if m := p.FindStringSubmatch(message); len(m) > 1 {
			if t := strings.TrimSpace(m[1]); t != "" {
				return t
			}
		}
	}
	return ""
}

// Classify maps a message to an intent with ordered substring checks.
func Classify(message string) Intent {
	m := strings.ToLower(message)
	has := func(s string) bool { return strings.Contains(m, s) }

	switch {
	case has("hello"), has("hi"), has("hey"):
		return IntentGreeting
	case has("sentiment") && (has("of") || has("for") || has("about")):
		return IntentSentiment
	case has("stats"), has("statistics"), has("overview"):
		return IntentGeneralStats
	case has("movie") && (has("about") || has("tell me") || has("info")):
		return IntentMovieStats
	case has("recommend"), has("suggest"), has("best"), has("top"):
		return IntentRecommendations
	case has("review"), has("negative"), has("positive"), has("search"):
		return IntentReviewSearch
	default:
		return IntentGeneral
	}
}

// Process answers one user message and records both turns in the history.
func (b *Bot) Process(ctx context.Context, message string) string {
	b.record("user", message)

	var reply string
	switch Classify(message) {
	case IntentGreeting:
		reply = b.greeting()
	case IntentSentiment:
		reply = b.sentimentAnalysis(ctx, message)
	case IntentGeneralStats:
		reply = b.generalStats(ctx)
	case IntentMovieStats:
		reply = b.movieStats(ctx, message)
	case IntentRecommendations:
		reply = b.recommendations(ctx)
	case IntentReviewSearch:
		reply = b.reviewSearch(ctx, message)
	default:
		reply = b.general()
	}

	b.record("assistant", reply)
	return reply
}

func (b *Bot) record(role, content string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = append(b.history, Message{Role: role, Content: content, Timestamp: time.Now().UTC()})
}

// History returns a copy of the conversation so far.
func (b *Bot) History() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Message, len(b.history))
	copy(out, b.history)
	return out
}

func (b *Bot) ClearHistory() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = nil
}

func (b *Bot) sentimentAnalysis(ctx context.Context, message string) string {
	title := ExtractTitle(message)
	if title == "" {
		return "Please specify which movie you'd like me to analyze! For example: 'What's the sentiment of Avatar reviews?'"
	}

	st, err := b.stats.Stats(ctx, title, false)
	if err != nil {
		log.Error().Err(err).Str("title", title).Msg("chatbot: stats lookup failed")
		return "I'm having trouble accessing the sentiment data right now. Please try again later!"
	}

	o := st.Overview
	if o.Total == 0 {
		return fmt.Sprintf("I couldn't find any reviews for %q. Would you like to add the first review?", title)
	}

	posPct := pct(o.Positive, o.Total)
	negPct := pct(o.Negative, o.Total)
	neuPct := pct(o.Neutral, o.Total)

	var summary string
	switch {
	case posPct > 60:
		summary = "overwhelmingly positive! Audiences seem to love this movie!"
	case negPct > 60:
		summary = "mostly negative. This movie seems to have divided opinions."
	case posPct > negPct:
		summary = "generally positive with some mixed reactions."
	default:
		summary = "quite mixed with varied opinions."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Sentiment Analysis for %q:\n\n", title)
	fmt.Fprintf(&sb, "Total Reviews: %d\n", o.Total)
	fmt.Fprintf(&sb, "Average Rating: %v/5\n\n", o.AverageRating)
	sb.WriteString("Sentiment Breakdown:\n")
	fmt.Fprintf(&sb, "Positive: %d (%d%%)\n", o.Positive, posPct)
	fmt.Fprintf(&sb, "Neutral: %d (%d%%)\n", o.Neutral, neuPct)
	fmt.Fprintf(&sb, "Negative: %d (%d%%)\n\n", o.Negative, negPct)
	fmt.Fprintf(&sb, "Overall, the sentiment is %s\n\n", summary)
	sb.WriteString("Would you like me to show you some specific reviews or analyze another movie?")
	return sb.String()
}

func (b *Bot) generalStats(ctx context.Context) string {
	st, err := b.stats.Stats(ctx, "", false)
	if err != nil {
		log.Error().Err(err).Msg("chatbot: stats lookup failed")
		return "I'm having trouble accessing the statistics right now. Please try again later!"
	}

	o := st.Overview
	if o.Total == 0 {
		return "There are no reviews yet. Add some reviews and ask me again!"
	}

	posPct := pct(o.Positive, o.Total)

	var sb strings.Builder
	sb.WriteString("Overall Review Statistics:\n\n")
	fmt.Fprintf(&sb, "Total Reviews: %d\n", o.Total)
	fmt.Fprintf(&sb, "Average Rating: %v/5\n", o.AverageRating)
	fmt.Fprintf(&sb, "Average Sentiment Score: %v\n\n", o.AverageSentimentScore)
	sb.WriteString("Sentiment Distribution:\n")
	fmt.Fprintf(&sb, "Positive: %d (%d%%)\n", o.Positive, posPct)
	fmt.Fprintf(&sb, "Neutral: %d (%d%%)\n", o.Neutral, pct(o.Neutral, o.Total))
	fmt.Fprintf(&sb, "Negative: %d (%d%%)\n\n", o.Negative, pct(o.Negative, o.Total))

	if top := st.TopMovies; len(top) > 0 {
		if len(top) > 3 {
			top = top[:3]
		}
		sb.WriteString("Top-Rated Movies:\n")
		for i, m := range top {
			fmt.Fprintf(&sb, "%d. %s (%v/5)\n", i+1, m.MovieTitle, m.AverageRating)
		}
		sb.WriteString("\n")
	}

	if posPct > 50 {
		sb.WriteString("The community sentiment is predominantly positive! ")
	} else {
		sb.WriteString("The community sentiment is quite mixed! ")
	}
	sb.WriteString("What specific movie or aspect would you like to explore?")
	return sb.String()
}

func (b *Bot) movieStats(ctx context.Context, message string) string {
	title := ExtractTitle(message)
	if title == "" {
		return "Which movie would you like to know more about? Please specify the movie title!"
	}

	p := domain.TitlePattern(title)
	page, err := b.queries.ListReviews(ctx, domain.ListQuery{
		Page:   1,
		Limit:  5,
		Filter: domain.ReviewFilter{TitlePattern: &p},
	})
	if err != nil {
		log.Error().Err(err).Str("title", title).Msg("chatbot: review lookup failed")
		return "I'm having trouble accessing movie information right now. Please try again later!"
	}

	reviews := page.Items
	if len(reviews) == 0 {
		return fmt.Sprintf("I couldn't find any reviews for %q. Would you like to add the first review?", title)
	}

	var sum int
	counts := map[domain.Label]int{}
	for _, r := range reviews {
		sum += r.Rating
		counts[r.Sentiment]++
	}
	avg := float64(sum) / float64(len(reviews))
	dominant := domain.Neutral
	for _, l := range []domain.Label{domain.Positive, domain.Negative, domain.Neutral} {
		if counts[l] > counts[dominant] {
			dominant = l
		}
	}
	latest := reviews[0]

	var sb strings.Builder
	fmt.Fprintf(&sb, "%q - Movie Information:\n\n", title)
	fmt.Fprintf(&sb, "%d %s found\n", len(reviews), plural("review", len(reviews)))
	fmt.Fprintf(&sb, "Average Rating: %.1f/5\n", avg)
	fmt.Fprintf(&sb, "Dominant Sentiment: %s\n\n", dominant)
	for _, l := range []domain.Label{domain.Positive, domain.Neutral, domain.Negative} {
		if n := counts[l]; n > 0 {
			fmt.Fprintf(&sb, "%s: %d %s\n", capitalize(string(l)), n, plural("review", n))
		}
	}
	sb.WriteString("\nLatest Review:\n")
	fmt.Fprintf(&sb, "%q\n", snippet(latest.Comment, 150))
	fmt.Fprintf(&sb, "- %s (%d/5, %s)\n\n", latest.UserName, latest.Rating, latest.Sentiment)
	sb.WriteString("Would you like to see more reviews or get sentiment analysis for another movie?")
	return sb.String()
}

func (b *Bot) recommendations(ctx context.Context) string {
	st, err := b.stats.Stats(ctx, "", false)
	if err != nil {
		log.Error().Err(err).Msg("chatbot: stats lookup failed")
		return "I'm having trouble generating recommendations right now. Please try again later!"
	}

	top := st.TopMovies
	if len(top) == 0 {
		return "I don't have enough data to make recommendations yet. Add some reviews to get personalized suggestions!"
	}
	if len(top) > 5 {
		top = top[:5]
	}

	var sb strings.Builder
	sb.WriteString("Top Movie Recommendations (Based on Ratings & Sentiment):\n\n")
	for i, m := range top {
		var mood string
		switch {
		case m.PositivePercentage > 70:
			mood = "Highly Positive"
		case m.PositivePercentage > 50:
			mood = "Mostly Positive"
		case m.PositivePercentage > 30:
			mood = "Mixed"
		default:
			mood = "Mostly Negative"
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, m.MovieTitle)
		fmt.Fprintf(&sb, "   %v/5 (%d reviews)\n", m.AverageRating, m.ReviewCount)
		fmt.Fprintf(&sb, "   %s (%v%% positive)\n\n", mood, m.PositivePercentage)
	}
	sb.WriteString("These movies have the highest ratings and best sentiment scores!\n")
	sb.WriteString("Want to know more about any of these movies? Just ask!")
	return sb.String()
}

func (b *Bot) reviewSearch(ctx context.Context, message string) string {
	m := strings.ToLower(message)
	var sentiment *domain.Label
	for _, l := range []domain.Label{domain.Positive, domain.Negative, domain.Neutral} {
		if strings.Contains(m, string(l)) {
			lbl := l
			sentiment = &lbl
			break
		}
	}

	page, err := b.queries.ListReviews(ctx, domain.ListQuery{
		Page:   1,
		Limit:  3,
		Filter: domain.ReviewFilter{Sentiment: sentiment},
	})
	if err != nil {
		log.Error().Err(err).Msg("chatbot: review search failed")
		return "I'm having trouble searching reviews right now. Please try again later!"
	}

	if len(page.Items) == 0 {
		if sentiment != nil {
			return fmt.Sprintf("I couldn't find any %s reviews at the moment. Try adding some reviews first!", *sentiment)
		}
		return "I couldn't find any reviews at the moment. Try adding some reviews first!"
	}

	var sb strings.Builder
	if sentiment != nil {
		fmt.Fprintf(&sb, "%s Reviews:\n\n", capitalize(string(*sentiment)))
	} else {
		sb.WriteString("Reviews:\n\n")
	}
	for i, r := range page.Items {
		fmt.Fprintf(&sb, "%d. %s (%d/5)\n", i+1, r.MovieTitle, r.Rating)
		fmt.Fprintf(&sb, "   %q\n", snippet(r.Comment, 120))
		fmt.Fprintf(&sb, "   - %s, %s\n\n", r.UserName, r.Sentiment)
	}
	sb.WriteString("Want to see reviews for a specific movie or different sentiment? Just let me know!")
	return sb.String()
}

var greetings = []string{
	"Hello! I'm your movie review sentiment assistant! I can help you analyze reviews, find patterns, and discover insights about movies.",
	"Hi there! Ready to dive into some movie review analysis? I can show you sentiment breakdowns, top-rated movies, and much more!",
	"Hey! I'm here to help you understand what people are saying about movies. Ask me about sentiment analysis, statistics, or specific movies!",
}

func (b *Bot) greeting() string {
	return greetings[rand.Intn(len(greetings))] + "\n\n" +
		"You can ask me things like:\n" +
		"- \"What's the sentiment of Avatar reviews?\"\n" +
		"- \"Show me the top-rated movies\"\n" +
		"- \"What are some negative reviews?\"\n" +
		"- \"Give me overall statistics\"\n\n" +
		"What would you like to explore?"
}

var fallbacks = []string{
	"I specialize in movie review sentiment analysis! Try asking me about specific movies, overall statistics, or sentiment patterns.",
	"I can help you understand movie reviews better! Ask me about sentiment analysis, top-rated movies, or review statistics.",
	"I'm your movie sentiment expert! I can analyze reviews, show you trends, and help you discover great movies based on community feedback.",
	"That's an interesting question! I'm focused on movie review analysis. Try asking me about movie sentiments, ratings, or review statistics.",
}

func (b *Bot) general() string {
	return fallbacks[rand.Intn(len(fallbacks))] + "\n\n" +
		"Popular questions:\n" +
		"- Movie sentiment analysis\n" +
		"- Review statistics and trends\n" +
		"- Top-rated movie recommendations\n" +
		"- Positive/negative review examples\n\n" +
		"What would you like to know?"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func pct(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func snippet(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
