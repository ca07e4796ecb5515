// Package bootstrap wires configuration into a ready-to-serve application.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/analyses"
	googleauth "resume-optimizer/internal/auth"
	"resume-optimizer/internal/export"
	"resume-optimizer/internal/intake"
	"resume-optimizer/internal/llm"
	"resume-optimizer/internal/llm/anthropic"
	"resume-optimizer/internal/results"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/server"
	"resume-optimizer/internal/shared/storage/db"
	"resume-optimizer/internal/shared/storage/object"
	localstore "resume-optimizer/internal/shared/storage/object/local"
	s3store "resume-optimizer/internal/shared/storage/object/s3"
	"resume-optimizer/internal/users"
)

// App holds the wired application.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client

	AnalysesRepo analyses.Repo
	UsersRepo    users.Repo

	AnalysesService *analyses.Service
	UsersService    *users.Service
	ResultsCache    *results.Cache

	AnalysesHandler *analyses.Handler
	ResultsHandler  *results.Handler
	ExportHandler   *export.Handler
	IntakeHandler   *intake.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares all dependencies and the router. A missing DATABASE_URL
// degrades to in-memory repos so local dev works without Postgres.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB := buildDB(ctx, cfg)

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    llmClient,
	}

	if sqlDB != nil {
		app.AnalysesRepo = &analyses.PGRepo{DB: sqlDB}
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
	} else {
		app.AnalysesRepo = analyses.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.AnalysesService = analyses.NewService(app.LLM, app.AnalysesRepo, cfg.LLMMaxTokens)
	app.UsersService = users.NewService(app.UsersRepo)
	app.ResultsCache = results.NewCache(cfg.ResultsTTL)

	app.AnalysesHandler = analyses.NewHandler(app.AnalysesService, app.ResultsCache, cfg.AuthRequired)
	app.ResultsHandler = results.NewHandler(app.ResultsCache, app.AnalysesService)
	app.ExportHandler = export.NewHandler(export.NewChromedpRenderer(), app.Store)
	app.IntakeHandler = intake.NewHandler(app.Store)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.GoogleAuth = googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		app.UsersService,
	)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Analyses: app.AnalysesHandler,
		Results:  app.ResultsHandler,
		Export:   app.ExportHandler,
		Intake:   app.IntakeHandler,
		Users:    app.UsersHandler,
		Auth:     app.GoogleAuth,
	})

	return app, nil
}

// Close releases held resources.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL not set, using in-memory repositories")
		return nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		sqlDB.Close()
		return nil
	}
	return sqlDB
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, fmt.Errorf("build s3 store: %w", err)
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	return anthropic.New(cfg.AnthropicAPIKey,
		anthropic.WithModel(cfg.LLMModel),
		anthropic.WithTimeout(time.Duration(cfg.LLMTimeoutSeconds)*time.Second),
	)
}
