//go:build integration || !unit

package integration

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	httpserver "movie_reviews/internal/adapters/http_server"
	redisad "movie_reviews/internal/adapters/redis"
	"movie_reviews/internal/app"
	"movie_reviews/internal/chatbot"
	"movie_reviews/internal/domain"
	"movie_reviews/internal/sentiment"
	mysqlrepo "movie_reviews/internal/storage/mysql"
)

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// startStack brings up MySQL in Docker and miniredis in-process, then wires
// the real services and chi router around them.
func startStack(t *testing.T) *httptest.Server {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=movie_reviews",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "movie_reviews")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)

	repo := mysqlrepo.New(db)
	resolver := sentiment.NewResolver(nil)
	queries := app.NewQueryService(repo, cache, time.Minute)
	stats := app.NewStatsService(repo, cache, time.Minute)

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{
		Reviews: app.NewReviewService(repo, resolver, cache),
		Queries: queries,
		Stats:   stats,
		Bot:     chatbot.New(queries, stats),
	})

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

type envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Pagination *domain.Pagination `json:"pagination"`
}

func postJSON(t *testing.T, url string, body any) (*http.Response, envelope) {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp, env
}

func getJSON(t *testing.T, url string) (*http.Response, envelope) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp, env
}

func TestHTTP_EndToEnd_ReviewLifecycleAndStats(t *testing.T) {
	ts := startStack(t)

	// create a handful of reviews through the API
	seeds := []map[string]any{
		{"movieTitle": "The Matrix", "userName": "ana", "rating": 5, "comment": "A brilliant, amazing ride from start to finish"},
		{"movieTitle": "The Matrix", "userName": "bob", "rating": 4, "comment": "Great effects and a solid story"},
		{"movieTitle": "The Matrix Reloaded", "userName": "cem", "rating": 2, "comment": "Disappointing and boring compared to the original"},
	}
	var firstID string
	for i, s := range seeds {
		resp, env := postJSON(t, ts.URL+"/v1/reviews", s)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create %d: status %d", i, resp.StatusCode)
		}
		var rv domain.Review
		if err := json.Unmarshal(env.Data, &rv); err != nil {
			t.Fatalf("decode created: %v", err)
		}
		if i == 0 {
			firstID = rv.ID
			if rv.Sentiment != domain.Positive {
				t.Fatalf("seed 0 sentiment = %s, want positive", rv.Sentiment)
			}
		}
	}

	// list with a title filter
	resp, env := getJSON(t, ts.URL+"/v1/reviews?movieTitle=matrix&limit=10")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status %d", resp.StatusCode)
	}
	if env.Pagination == nil || env.Pagination.TotalReviews != 3 {
		t.Fatalf("pagination = %+v", env.Pagination)
	}

	// stats: scoped overview, global top movies
	resp, env = getJSON(t, ts.URL+"/v1/reviews/stats?movieTitle=The+Matrix+Reloaded")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats status %d", resp.StatusCode)
	}
	var st domain.Stats
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if st.Overview.Total != 1 || st.Overview.Negative != 1 {
		t.Fatalf("scoped overview = %+v", st.Overview)
	}
	if len(st.TopMovies) != 2 || st.TopMovies[0].MovieTitle != "The Matrix" {
		t.Fatalf("top movies = %+v", st.TopMovies)
	}

	// movie search groups and ranks
	resp, env = getJSON(t, ts.URL+"/v1/reviews/search?query=matrix")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search status %d", resp.StatusCode)
	}
	var hits []domain.MovieSearchHit
	if err := json.Unmarshal(env.Data, &hits); err != nil {
		t.Fatalf("decode hits: %v", err)
	}
	if len(hits) != 2 || hits[0].MovieTitle != "The Matrix" || hits[0].ReviewCount != 2 {
		t.Fatalf("hits = %+v", hits)
	}

	// update flips sentiment with the new comment and rating
	b, _ := json.Marshal(map[string]any{"rating": 1, "comment": "Awful on rewatch, terrible pacing"})
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/reviews/"+firstID, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	putResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer putResp.Body.Close()
	if putResp.StatusCode != http.StatusOK {
		t.Fatalf("update status %d", putResp.StatusCode)
	}
	var putEnv envelope
	if err := json.NewDecoder(putResp.Body).Decode(&putEnv); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	var updated domain.Review
	if err := json.Unmarshal(putEnv.Data, &updated); err != nil {
		t.Fatalf("decode updated review: %v", err)
	}
	if updated.Sentiment != domain.Negative {
		t.Fatalf("updated sentiment = %s, want negative", updated.Sentiment)
	}

	// stale stats cache was invalidated by the update
	resp, env = getJSON(t, ts.URL+"/v1/reviews/stats")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("global stats status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatalf("decode global stats: %v", err)
	}
	if st.Overview.Negative != 2 {
		t.Fatalf("global negative = %d, want 2 after update", st.Overview.Negative)
	}

	// chatbot answers from the same data
	resp, env = postJSON(t, ts.URL+"/v1/chat", map[string]any{"message": "recommend the top movies"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chat status %d", resp.StatusCode)
	}
	var chat struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(env.Data, &chat); err != nil {
		t.Fatalf("decode chat: %v", err)
	}
	if chat.Response == "" {
		t.Fatal("empty chat response")
	}
}
