package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"movie_reviews/internal/app"
	"movie_reviews/internal/chatbot"
	"movie_reviews/internal/domain"
)

type Handlers struct {
	Reviews *app.ReviewService
	Queries *app.QueryService
	Stats   *app.StatsService
	Bot     *chatbot.Bot
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// envelope is the response shape every 2xx endpoint uses.
type envelope struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1/reviews", func(r chi.Router) {
		r.Get("/", h.listReviews)
		r.Post("/", h.createReview)
		r.Get("/stats", h.getStats)
		r.Get("/search", h.searchMovies)
		r.Get("/{id}", h.getReview)
		r.Put("/{id}", h.updateReview)
		r.Delete("/{id}", h.deleteReview)
	})

	s.mux.Post("/v1/chat", h.chat)
	s.mux.Get("/v1/chat/history", h.chatHistory)
	s.mux.Delete("/v1/chat/history", h.clearChatHistory)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps a service error to a problem response. Anything that is
// neither a validation failure nor a missing review is logged and reported
// as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalid):
		writeProblem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "review not found")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached sends v with an ETag, short-circuiting to 304 when the client
// already holds the current version.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	rv, err := h.Reviews.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: rv})
}

func (h *Handlers) getReview(w http.ResponseWriter, r *http.Request) {
	rv, err := h.Queries.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: rv})
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	rv, err := h.Reviews.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: rv})
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	rv, err := h.Reviews.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: rv})
}

// listQueryFromRequest parses pagination and filter params. Unknown
// sentiment values and out-of-range ratings are rejected rather than
// silently ignored.
func listQueryFromRequest(r *http.Request) (domain.ListQuery, error) {
	q := domain.ListQuery{Page: 1}
	qs := r.URL.Query()

	if v := qs.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return q, errors.New("page must be a positive integer")
		}
		q.Page = n
	}
	if v := qs.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return q, errors.New("limit must be a positive integer")
		}
		q.Limit = n
	}
	if v := qs.Get("movieTitle"); v != "" {
		p := domain.TitlePattern(v)
		q.Filter.TitlePattern = &p
	}
	if v := qs.Get("sentiment"); v != "" {
		if !domain.ValidLabel(v) {
			return q, errors.New("sentiment must be one of positive, negative, neutral")
		}
		l := domain.Label(v)
		q.Filter.Sentiment = &l
	}
	for _, b := range []struct {
		name string
		dst  **int
	}{{"minRating", &q.Filter.MinRating}, {"maxRating", &q.Filter.MaxRating}} {
		if v := qs.Get(b.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 5 {
				return q, errors.New(b.name + " must be an integer between 1 and 5")
			}
			*b.dst = &n
		}
	}
	return q, nil
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	q, err := listQueryFromRequest(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Query", err.Error())
		return
	}
	page, err := h.Queries.ListReviews(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	p := page.Pagination
	writeCached(w, r, envelope{Success: true, Data: page.Items, Pagination: &p})
}

func (h *Handlers) getStats(w http.ResponseWriter, r *http.Request) {
	fill := false
	if v := r.URL.Query().Get("fill"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid Query", "fill must be a boolean")
			return
		}
		fill = b
	}
	st, err := h.Stats.Stats(r.Context(), r.URL.Query().Get("movieTitle"), fill)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, envelope{Success: true, Data: st})
}

func (h *Handlers) searchMovies(w http.ResponseWriter, r *http.Request) {
	hits, err := h.Queries.SearchMovies(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, envelope{Success: true, Data: hits})
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	var in chatRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Message == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "message is required")
		return
	}
	reply := h.Bot.Process(r.Context(), in.Message)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: chatResponse{Response: reply}})
}

func (h *Handlers) chatHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: h.Bot.History()})
}

func (h *Handlers) clearChatHistory(w http.ResponseWriter, r *http.Request) {
	h.Bot.ClearHistory()
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: "conversation history cleared"})
}
