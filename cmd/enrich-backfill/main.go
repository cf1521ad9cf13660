// Command enrich-backfill fetches dictionary data for catalog words that
// are still missing a definition, most frequent first. Ingestion enriches
// new words inline; this tool catches up after outages or when
// fetch_definitions was disabled. It is intended to be invoked by an
// external cron job, not as an in-process goroutine.
//
// Flags:
//
//	--limit  maximum number of words to process (default 100)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/kelime/kelime-backend/internal/adapter/postgres"
	"github.com/kelime/kelime-backend/internal/adapter/postgres/word"
	"github.com/kelime/kelime-backend/internal/adapter/provider/freedict"
	"github.com/kelime/kelime-backend/internal/app"
	"github.com/kelime/kelime-backend/internal/config"
)

func main() {
	limitFlag := flag.Int("limit", 100, "maximum number of words to process")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	wordRepo := word.New(pool)
	provider := freedict.NewProvider(cfg.Ingest.DictionaryBaseURL, cfg.Ingest.DictionaryTimeout, logger)

	words, err := wordRepo.ListUnenriched(ctx, *limitFlag)
	if err != nil {
		logger.Error("list unenriched words", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var enriched, missed int
	for _, w := range words {
		if ctx.Err() != nil {
			break
		}

		e, err := provider.Fetch(ctx, w.Text)
		if err != nil {
			logger.Warn("fetch failed",
				slog.String("word", w.Text),
				slog.String("error", err.Error()),
			)
			continue
		}
		if e == nil || e.IsEmpty() {
			missed++
			continue
		}

		if err := wordRepo.UpdateEnrichment(ctx, w.ID, *e); err != nil {
			logger.Warn("store enrichment failed",
				slog.String("word", w.Text),
				slog.String("error", err.Error()),
			)
			continue
		}
		enriched++
	}

	logger.Info("backfill completed",
		slog.Int("candidates", len(words)),
		slog.Int("enriched", enriched),
		slog.Int("not_in_dictionary", missed),
	)
}
