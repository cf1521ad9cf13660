package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/kelime/kelime-backend/internal/adapter/postgres"
	"github.com/kelime/kelime-backend/internal/adapter/postgres/knowledge"
	"github.com/kelime/kelime-backend/internal/adapter/postgres/profile"
	"github.com/kelime/kelime-backend/internal/adapter/postgres/reviewlog"
	"github.com/kelime/kelime-backend/internal/adapter/postgres/source"
	"github.com/kelime/kelime-backend/internal/adapter/postgres/word"
	"github.com/kelime/kelime-backend/internal/adapter/provider/freedict"
	"github.com/kelime/kelime-backend/internal/config"
	ingestsvc "github.com/kelime/kelime-backend/internal/service/ingest"
	profilesvc "github.com/kelime/kelime-backend/internal/service/profile"
	reviewsvc "github.com/kelime/kelime-backend/internal/service/review"
	"github.com/kelime/kelime-backend/internal/transport/middleware"
	"github.com/kelime/kelime-backend/internal/transport/rest"
	"github.com/kelime/kelime-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories and services, and serves HTTP until
// the context is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	wordRepo := word.New(pool)
	knowledgeRepo := knowledge.New(pool)
	sourceRepo := source.New(pool)
	profileRepo := profile.New(pool)
	reviewLogRepo := reviewlog.New(pool)

	reviewService := reviewsvc.NewService(logger, knowledgeRepo, wordRepo, profileRepo, reviewLogRepo, txm, cfg.SRS)
	profileService := profilesvc.NewService(logger, profileRepo)

	var ingestService *ingestsvc.Service
	if cfg.Ingest.FetchDefinitions {
		enricher := freedict.NewProvider(cfg.Ingest.DictionaryBaseURL, cfg.Ingest.DictionaryTimeout, logger)
		ingestService = ingestsvc.NewService(logger, wordRepo, knowledgeRepo, sourceRepo, profileRepo, enricher, txm, cfg.Ingest)
	} else {
		ingestService = ingestsvc.NewService(logger, wordRepo, knowledgeRepo, sourceRepo, profileRepo, nil, txm, cfg.Ingest)
	}

	handlers := rest.Handlers{
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Sources:   rest.NewSourceHandler(ingestService, logger),
		Review:    rest.NewReviewHandler(reviewService, logger),
		Words:     rest.NewWordHandler(reviewService, logger),
		Dashboard: rest.NewDashboardHandler(reviewService, logger),
		Profile:   rest.NewProfileHandler(profileService, logger),
	}

	var extra []middleware.Middleware
	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(5 * time.Minute)
		defer limiter.Stop()
		extra = append(extra, limiter.Limit(cfg.Server.RateLimitPerMinute))
	}

	router := rest.NewRouter(handlers, cfg.CORS, logger, extra...)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// migrate applies pending goose migrations from the embedded FS.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
