package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo   = "mongo"
	StoreElastic = "elastic"
)

// Config holds the book service settings.
type Config struct {
	Addr            string
	Store           string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	ElasticURL      string
	ElasticIndex    string
	DBTimeout       time.Duration
	MaxBodyBytes    int64
	RateLimitRPS    float64
	RateLimitBurst  int
	CORSOrigins     []string
	EnableHSTS      bool
	LogLevel        string
}

// LoadEnvFiles loads .env and .env.local. Variables already present in the
// process environment are never overridden.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Addr:            getEnv("APP_ADDR", ":3000"),
		Store:           strings.ToLower(getEnv("BOOK_STORE", StoreMongo)),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "bad-bookstore"),
		MongoCollection: getEnv("MONGO_COLLECTION", "books"),
		ElasticURL:      getEnv("ELASTIC_URL", "http://localhost:9200"),
		ElasticIndex:    getEnv("ELASTIC_INDEX", "books"),
		CORSOrigins:     splitList(os.Getenv("CORS_ORIGINS")),
		EnableHSTS:      os.Getenv("ENABLE_HSTS") == "true",
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.DBTimeout, err = time.ParseDuration(getEnv("DB_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("DB_TIMEOUT: %w", err)
	}
	if cfg.DBTimeout <= 0 {
		return Config{}, fmt.Errorf("DB_TIMEOUT: must be positive, got %s", cfg.DBTimeout)
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES: %w", err)
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "0"), 64); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20")); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}

	switch cfg.Store {
	case StoreMongo, StoreElastic:
	default:
		return Config{}, fmt.Errorf("BOOK_STORE: unknown store %q (want %s or %s)", cfg.Store, StoreMongo, StoreElastic)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// RedactURI hides the credentials part of a connection string.
func RedactURI(uri string) string {
	const marker = "://"
	start := strings.Index(uri, marker)
	if start < 0 {
		return uri
	}
	start += len(marker)
	end := strings.Index(uri[start:], "@")
	if end < 0 {
		return uri
	}
	return uri[:start] + "***" + uri[start+end:]
}
