package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"resumescan-backend/internal/config"
	"resumescan-backend/internal/pipeline"
	"resumescan-backend/internal/records"
	"resumescan-backend/internal/render"
	"resumescan-backend/internal/scoring"
	"resumescan-backend/internal/scoring/gemini"
	"resumescan-backend/internal/scoring/openai"
	"resumescan-backend/internal/server"
	"resumescan-backend/internal/storage/db"
	"resumescan-backend/internal/storage/object"
	localstore "resumescan-backend/internal/storage/object/local"
	s3store "resumescan-backend/internal/storage/object/s3"
)

// App holds the shared dependencies of one server process.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Store    object.ObjectStore
	Records  *records.Store
	Renderer *render.Renderer
	Scorer   scoring.Client
	Pipeline *pipeline.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, kv, err := buildKV(ctx, cfg)
	if err != nil {
		return nil, err
	}
	recordStore := records.NewStore(kv)

	scorer, err := buildScorer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	renderer := render.New()
	pipelineSvc := &pipeline.Service{
		Store:    store,
		Renderer: renderer,
		Records:  recordStore,
		Scorer:   scorer,
	}

	handler := &server.Handler{
		Pipeline: pipelineSvc,
		Records:  recordStore,
		Store:    store,
		Previews: renderer.Handles(),
	}

	return &App{
		Config:   cfg,
		Router:   server.NewRouter(cfg, handler),
		DB:       sqlDB,
		Store:    store,
		Records:  recordStore,
		Renderer: renderer,
		Scorer:   scorer,
		Pipeline: pipelineSvc,
	}, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildKV(ctx context.Context, cfg config.Config) (*sql.DB, records.KV, error) {
	switch cfg.KVStoreType {
	case "postgres":
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultServerOptions())
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: database connect failed; using in-memory records: %v", err)
				return nil, records.NewMemoryKV(), nil
			}
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return sqlDB, &records.PGKV{DB: sqlDB}, nil
	case "redis":
		kv, err := records.NewRedisKV(ctx, cfg.RedisURL)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: redis connect failed; using in-memory records: %v", err)
				return nil, records.NewMemoryKV(), nil
			}
			return nil, nil, err
		}
		return nil, kv, nil
	default:
		return nil, records.NewMemoryKV(), nil
	}
}

func buildScorer(ctx context.Context, cfg config.Config) (scoring.Client, error) {
	switch cfg.ScorerProvider {
	case "openai":
		return openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.ScorerModel)
	case "gemini":
		return gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"), cfg.ScorerModel)
	default:
		return scoring.MockClient{}, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
