package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/store"
)

func main() {
	logger := zap.Must(zap.NewDevelopment())
	defer func() { _ = logger.Sync() }()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	count, err := strconv.Atoi(getEnv("SEED_COUNT", "20"))
	if err != nil || count < 0 {
		logger.Fatal("SEED_COUNT must be a non-negative integer", zap.String("value", os.Getenv("SEED_COUNT")))
	}

	ctx := context.Background()
	repo, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open book store", zap.Error(err))
	}
	defer func() { _ = closeStore(ctx) }()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	logger.Info("generating books", zap.Int("count", count), zap.String("store", cfg.Store))

	for i := 0; i < count; i++ {
		if _, err := repo.Create(ctx, sampleBook(rng, i)); err != nil {
			logger.Fatal("failed to insert book", zap.Int("index", i), zap.Error(err))
		}
	}

	books, err := repo.List(ctx)
	if err != nil {
		logger.Fatal("failed to count books", zap.Error(err))
	}
	logger.Info("seed complete", zap.Int("inserted", count), zap.Int("total", len(books)))
}

func sampleBook(rng *rand.Rand, i int) book.Input {
	title := fmt.Sprintf("Book Title %d - %s", i+1, randomWord(rng))
	author := authors[rng.Intn(len(authors))]
	summary := fmt.Sprintf("This is a book about %s. It explores the fundamental concepts and provides insights into the subject matter.", randomWord(rng))
	price := float64(500+rng.Intn(4500)) / 100

	return book.Input{
		Title:   &title,
		Author:  &author,
		Summary: &summary,
		Price:   &price,
	}
}

var authors = []string{
	"Ursula K. Le Guin", "Italo Calvino", "Toni Morrison", "Jorge Luis Borges",
	"Octavia E. Butler", "Haruki Murakami", "Chinua Achebe", "Virginia Woolf",
}

func randomWord(rng *rand.Rand) string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rng.Intn(len(words))]
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
