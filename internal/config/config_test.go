package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("KV_STORE", "")
	t.Setenv("OBJECT_STORE", "")
	t.Setenv("SCORER_PROVIDER", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.ObjectStoreType != "local" {
		t.Errorf("ObjectStoreType = %q", cfg.ObjectStoreType)
	}
	if cfg.KVStoreType != "memory" {
		t.Errorf("KVStoreType = %q", cfg.KVStoreType)
	}
	if cfg.ScorerProvider != "mock" {
		t.Errorf("ScorerProvider = %q", cfg.ScorerProvider)
	}
}

func TestLoadKVStoreFollowsDatabaseURL(t *testing.T) {
	t.Setenv("KV_STORE", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/resumescan")

	cfg := Load()
	if cfg.KVStoreType != "postgres" {
		t.Fatalf("KVStoreType = %q, want postgres", cfg.KVStoreType)
	}

	t.Setenv("KV_STORE", "redis")
	cfg = Load()
	if cfg.KVStoreType != "redis" {
		t.Fatalf("explicit KV_STORE ignored: %q", cfg.KVStoreType)
	}
}

func TestLoadSplitsCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:5173, https://app.example.com ,")

	cfg := Load()
	want := []string{"http://localhost:5173", "https://app.example.com"}
	if !reflect.DeepEqual(cfg.CORSAllowOrigin, want) {
		t.Fatalf("CORSAllowOrigin = %v, want %v", cfg.CORSAllowOrigin, want)
	}
}

func TestNormalizers(t *testing.T) {
	if got := normalizeEnv("PROD"); got != "production" {
		t.Errorf("normalizeEnv(PROD) = %q", got)
	}
	if got := normalizeEnv("nonsense"); got != "dev" {
		t.Errorf("normalizeEnv(nonsense) = %q", got)
	}
	if got := normalizeStoreType("S3"); got != "s3" {
		t.Errorf("normalizeStoreType(S3) = %q", got)
	}
	if got := normalizeKVStore("pg"); got != "postgres" {
		t.Errorf("normalizeKVStore(pg) = %q", got)
	}
	if got := normalizeScorer("OpenAI"); got != "openai" {
		t.Errorf("normalizeScorer(OpenAI) = %q", got)
	}
	if got := normalizeScorer("unknown"); got != "mock" {
		t.Errorf("normalizeScorer(unknown) = %q", got)
	}
}
