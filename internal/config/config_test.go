package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ADDR", "BOOK_STORE", "MONGO_URI", "MONGO_DATABASE", "DB_TIMEOUT", "RATE_LIMIT_RPS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr != ":3000" {
		t.Errorf("expected default addr :3000, got %q", cfg.Addr)
	}
	if cfg.Store != StoreMongo {
		t.Errorf("expected mongo store, got %q", cfg.Store)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" || cfg.MongoDatabase != "bad-bookstore" {
		t.Errorf("unexpected mongo defaults: %q %q", cfg.MongoURI, cfg.MongoDatabase)
	}
	if cfg.DBTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.DBTimeout)
	}
	if cfg.RateLimitRPS != 0 {
		t.Errorf("expected rate limiting off by default, got %v", cfg.RateLimitRPS)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BOOK_STORE", "Elastic")
	t.Setenv("DB_TIMEOUT", "250ms")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != StoreElastic {
		t.Errorf("expected elastic store, got %q", cfg.Store)
	}
	if cfg.DBTimeout != 250*time.Millisecond {
		t.Errorf("expected 250ms timeout, got %s", cfg.DBTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown store", key: "BOOK_STORE", value: "postgres"},
		{name: "unparsable timeout", key: "DB_TIMEOUT", value: "soon"},
		{name: "zero timeout", key: "DB_TIMEOUT", value: "0s"},
		{name: "negative timeout", key: "DB_TIMEOUT", value: "-1s"},
		{name: "unparsable body limit", key: "MAX_BODY_BYTES", value: "big"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, ".env")

	if err := os.WriteFile(p, []byte("MONGO_URI=from_file\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv("MONGO_URI", "from_env")

	cwd, _ := os.Getwd()
	_ = os.Chdir(tmp)
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	LoadEnvFiles()

	if got := os.Getenv("MONGO_URI"); got != "from_env" {
		t.Fatalf("expected existing env to win, got %q", got)
	}
}

func TestRedactURI(t *testing.T) {
	got := RedactURI("mongodb://user:secret@db:27017/x")
	if got != "mongodb://***@db:27017/x" {
		t.Errorf("unexpected redaction: %q", got)
	}
	if RedactURI("mongodb://localhost:27017") != "mongodb://localhost:27017" {
		t.Error("URI without credentials should be unchanged")
	}
}
