package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"movie_reviews/internal/app"
	"movie_reviews/internal/domain"
	"movie_reviews/internal/sentiment"
)

func newReviewService(repo *fakeRepo, cache *fakeCache) *app.ReviewService {
	return app.NewReviewService(repo, sentiment.NewResolver(nil), cache)
}

func TestCreate_PopulatesSentimentAndID(t *testing.T) {
	repo := newFakeRepo()
	svc := newReviewService(repo, newFakeCache())

	rv, err := svc.Create(context.Background(), domain.CreateReviewInput{
		MovieTitle: "  Inception  ",
		UserName:   "alice",
		Rating:     5,
		Comment:    "An amazing, brilliant movie",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rv.ID == "" {
		t.Fatal("expected a generated id")
	}
	if rv.MovieTitle != "Inception" {
		t.Fatalf("title not trimmed: %q", rv.MovieTitle)
	}
	if rv.Sentiment != domain.Positive || rv.SentimentScore <= 0 {
		t.Fatalf("sentiment = %s/%v, want positive with score > 0", rv.Sentiment, rv.SentimentScore)
	}
	if rv.CreatedAt.IsZero() || !rv.CreatedAt.Equal(rv.UpdatedAt) {
		t.Fatalf("timestamps: created %v updated %v", rv.CreatedAt, rv.UpdatedAt)
	}
	if stored, _ := repo.GetByID(context.Background(), rv.ID); stored.ID != rv.ID {
		t.Fatal("review not persisted")
	}
}

func TestCreate_ValidationErrors(t *testing.T) {
	svc := newReviewService(newFakeRepo(), newFakeCache())
	cases := []domain.CreateReviewInput{
		{MovieTitle: "", UserName: "u", Rating: 3, Comment: "c"},
		{MovieTitle: "m", UserName: "u", Rating: 0, Comment: "c"},
		{MovieTitle: "m", UserName: "u", Rating: 6, Comment: "c"},
		{MovieTitle: "m", UserName: "u", Rating: 3, Comment: "   "},
		{MovieTitle: strings.Repeat("x", 201), UserName: "u", Rating: 3, Comment: "c"},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalid) {
			t.Fatalf("case %d: err = %v, want ErrInvalid", i, err)
		}
	}
}

func TestCreate_InvalidatesCache(t *testing.T) {
	cache := newFakeCache()
	svc := newReviewService(newFakeRepo(), cache)

	if _, err := svc.Create(context.Background(), domain.CreateReviewInput{
		MovieTitle: "Dune", UserName: "bob", Rating: 4, Comment: "solid",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	want := []string{"reviews:1:10:::0:0", "stats::false", "stats::true", "stats:Dune:false"}
	for _, key := range want {
		found := false
		for _, d := range cache.deleted {
			if d == key {
				found = true
			}
		}
		if !found {
			t.Fatalf("key %q not invalidated (deleted: %v)", key, cache.deleted)
		}
	}
}

func TestUpdate_ReresolvesOnlyWhenRelevant(t *testing.T) {
	repo := newFakeRepo()
	svc := newReviewService(repo, newFakeCache())
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateReviewInput{
		MovieTitle: "Arrival", UserName: "carol", Rating: 5, Comment: "wonderful and brilliant",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// username-only patch leaves sentiment untouched
	name := "caroline"
	got, err := svc.Update(ctx, created.ID, domain.UpdateReviewInput{UserName: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.UserName != "caroline" {
		t.Fatalf("username = %q", got.UserName)
	}
	if got.Sentiment != created.Sentiment || got.SentimentScore != created.SentimentScore {
		t.Fatal("sentiment must not change on a username-only update")
	}

	// new comment triggers reclassification against the current rating
	comment := "horrible and boring, truly awful"
	rating := 1
	got, err = svc.Update(ctx, created.ID, domain.UpdateReviewInput{Comment: &comment, Rating: &rating})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Sentiment != domain.Negative {
		t.Fatalf("sentiment = %s, want negative after comment update", got.Sentiment)
	}
}

func TestUpdate_EmptyAfterTrimFieldsIgnored(t *testing.T) {
	svc := newReviewService(newFakeRepo(), newFakeCache())
	ctx := context.Background()

	created, _ := svc.Create(ctx, domain.CreateReviewInput{
		MovieTitle: "Heat", UserName: "dan", Rating: 4, Comment: "great pacing",
	})

	blank := "   "
	got, err := svc.Update(ctx, created.ID, domain.UpdateReviewInput{MovieTitle: &blank, Comment: &blank})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.MovieTitle != "Heat" || got.Comment != "great pacing" {
		t.Fatalf("blank fields must be ignored, got title=%q comment=%q", got.MovieTitle, got.Comment)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newReviewService(newFakeRepo(), newFakeCache())
	rating := 3
	if _, err := svc.Update(context.Background(), "missing", domain.UpdateReviewInput{Rating: &rating}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete_ReturnsDeletedReview(t *testing.T) {
	repo := newFakeRepo()
	svc := newReviewService(repo, newFakeCache())
	ctx := context.Background()

	created, _ := svc.Create(ctx, domain.CreateReviewInput{
		MovieTitle: "Alien", UserName: "ellen", Rating: 5, Comment: "a classic",
	})

	got, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got.ID != created.ID || got.MovieTitle != "Alien" {
		t.Fatalf("deleted review = %+v", got)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatal("review still present after delete")
	}
	if _, err := svc.Delete(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}
