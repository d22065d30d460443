package main

import (
	"context"
	"database/sql"
	"math/rand"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"movie_reviews/internal/adapters/observability"
	"movie_reviews/internal/domain"
	"movie_reviews/internal/sentiment"
	"movie_reviews/internal/shared"
	mysqlrepo "movie_reviews/internal/storage/mysql"
)

func pickRating() int {
	r := rand.Float64()
	cum := 0.0
	for i, w := range ratingWeights {
		cum += w
		if r <= cum {
			return i + 1
		}
	}
	return len(ratingWeights)
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.SeedWorkers).
		Int("reviews_per_movie", cfg.SeedPerMovie).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	if _, err := db.ExecContext(ctx, "TRUNCATE TABLE reviews"); err != nil {
		log.Fatal().Err(err).Msg("failed to clear reviews")
	}
	log.Info().Msg("cleared existing reviews")

	repo := mysqlrepo.New(db)

	// lexicon-only resolver; the templates are classifiable offline and
	// runs stay reproducible without an API key
	resolver := sentiment.NewResolver(nil)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, title := range movieTitles {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(movieTitle string) {
			defer wg.Done()
			defer sem.Release(1)

			for i := 0; i < cfg.SeedPerMovie; i++ {
				rating := pickRating()
				comment := reviewTemplates[rating][rand.Intn(len(reviewTemplates[rating]))]
				res := resolver.Resolve(ctx, comment, &rating)

				now := time.Now().UTC().Add(-time.Duration(rand.Intn(90*24)) * time.Hour)
				rv := domain.Review{
					ID:             uuid.NewString(),
					MovieTitle:     movieTitle,
					UserName:       userNames[rand.Intn(len(userNames))],
					Rating:         rating,
					Comment:        comment,
					Sentiment:      res.Label,
					SentimentScore: res.Score,
					CreatedAt:      now,
					UpdatedAt:      now,
				}
				if err := repo.Insert(ctx, rv); err != nil {
					log.Warn().Str("movie", movieTitle).Err(err).Msg("insert failed")
				}
			}
			log.Info().Str("movie", movieTitle).Msg("seeded")
		}(title)
	}

	wg.Wait()

	total, err := repo.Count(ctx, domain.ReviewFilter{})
	if err != nil {
		log.Fatal().Err(err).Msg("count failed")
	}
	log.Info().Int("movies", len(movieTitles)).Int("reviews", total).Msg("seeding completed")
}
