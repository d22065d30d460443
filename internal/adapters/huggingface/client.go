package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"movie_reviews/internal/adapters/observability"
	"movie_reviews/internal/domain"
)

// DefaultModelURL is the hosted three-class sentiment model used when no
// override is configured.
const DefaultModelURL = "https://api-inference.huggingface.co/models/cardiffnlp/twitter-roberta-base-sentiment-latest"

// Client calls a remote three-class sentiment endpoint. Every failure mode
// (network, timeout, bad status, malformed body) collapses into
// domain.ErrClassifierUnavailable so callers can fall back without caring
// why the classifier was unreachable.
type Client struct {
	url string
	hc  *http.Client
	key string
	rl  *rate.Limiter
}

func New(url, key string, timeout time.Duration, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if url == "" {
		url = DefaultModelURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		url: url,
		hc:  &http.Client{Timeout: timeout},
		key: key,
		rl:  rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// classScore is one (label, confidence) pair from the model response.
// The API answers with [[{label, score}, ...]] per input.
type classScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *Client) Classify(ctx context.Context, text string) (domain.SentimentResult, error) {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return domain.SentimentResult{}, domain.ErrClassifierUnavailable
	}

	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return domain.SentimentResult{}, domain.ErrClassifierUnavailable
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return domain.SentimentResult{}, domain.ErrClassifierUnavailable
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "movie-reviews/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("huggingface", "classify", 0, time.Since(start))
		log.Warn().Err(err).Msg("huggingface request failed")
		return domain.SentimentResult{}, domain.ErrClassifierUnavailable
	}
	defer resp.Body.Close()
	observability.ObserveExternal("huggingface", "classify", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Warn().Int("status", resp.StatusCode).Msg("huggingface returned non-200")
		return domain.SentimentResult{}, domain.ErrClassifierUnavailable
	}

	var out [][]classScore
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || len(out) == 0 || len(out[0]) == 0 {
		log.Warn().Err(err).Msg("huggingface response malformed")
		return domain.SentimentResult{}, domain.ErrClassifierUnavailable
	}

	// highest-confidence class wins
	top := out[0][0]
	for _, cs := range out[0][1:] {
		if cs.Score > top.Score {
			top = cs
		}
	}
	return mapClass(top), nil
}

// mapClass normalizes the model's class to the label/score contract:
// score is the signed confidence (neutral pins it to zero).
func mapClass(top classScore) domain.SentimentResult {
	conf := round2(top.Score)
	res := domain.SentimentResult{Label: domain.Neutral, Confidence: &conf}
	switch strings.ToUpper(top.Label) {
	case "LABEL_2", "POSITIVE":
		res.Label = domain.Positive
		res.Score = conf
	case "LABEL_0", "NEGATIVE":
		res.Label = domain.Negative
		res.Score = -conf
	}
	return res
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
