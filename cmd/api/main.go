package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "movie_reviews/internal/adapters/http_server"
	"movie_reviews/internal/adapters/huggingface"
	"movie_reviews/internal/adapters/observability"
	redisad "movie_reviews/internal/adapters/redis"
	"movie_reviews/internal/app"
	"movie_reviews/internal/chatbot"
	"movie_reviews/internal/sentiment"
	"movie_reviews/internal/shared"
	mysqlrepo "movie_reviews/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// sentiment resolver; the external classifier is optional and the
	// lexicon scorer covers for it when absent or failing
	var classifier *huggingface.Client
	if cfg.HFKey != "" {
		classifier, err = huggingface.New(cfg.HFModelURL, cfg.HFKey, cfg.HFTimeout, 5)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize classifier client")
		}
		log.Info().Msg("external classifier enabled")
	}
	var resolver *sentiment.Resolver
	if classifier != nil {
		resolver = sentiment.NewResolver(classifier)
	} else {
		resolver = sentiment.NewResolver(nil)
	}

	reviews := app.NewReviewService(repo, resolver, cache)
	queries := app.NewQueryService(repo, cache, cfg.CacheTTL)
	stats := app.NewStatsService(repo, cache, cfg.CacheTTL)
	bot := chatbot.New(queries, stats)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Reviews: reviews, Queries: queries, Stats: stats, Bot: bot})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
