// Command recalc-priorities recomputes queue priorities for every word
// a user has encountered, in any state, from the stored per-source
// frequencies. Run it after
// changing the scoring formula or when a user's stop-word filter setting
// changes retroactively. It is intended to be invoked by an external
// cron job or by hand, not as an in-process goroutine.
//
// Flags:
//
//	--user     recalculate a single user (UUID); default is all users
//	--dry-run  compute and log without writing
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

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/internal/adapter/postgres"
	"github.com/kelime/kelime-backend/internal/adapter/postgres/knowledge"
	"github.com/kelime/kelime-backend/internal/adapter/postgres/profile"
	"github.com/kelime/kelime-backend/internal/adapter/postgres/source"
	"github.com/kelime/kelime-backend/internal/app"
	"github.com/kelime/kelime-backend/internal/config"
	"github.com/kelime/kelime-backend/internal/domain"
	"github.com/kelime/kelime-backend/internal/textproc"
)

func main() {
	userFlag := flag.String("user", "", "recalculate a single user (UUID)")
	dryRunFlag := flag.Bool("dry-run", false, "compute and log without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	profileRepo := profile.New(pool)
	sourceRepo := source.New(pool)
	knowledgeRepo := knowledge.New(pool)

	var userIDs []uuid.UUID
	if *userFlag != "" {
		id, err := uuid.Parse(*userFlag)
		if err != nil {
			logger.Error("invalid --user flag", slog.String("value", *userFlag))
			os.Exit(1)
		}
		userIDs = []uuid.UUID{id}
	} else {
		userIDs, err = profileRepo.ListUserIDs(ctx)
		if err != nil {
			logger.Error("list users", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	now := time.Now().UTC()
	var totalChanged int64

	for _, userID := range userIDs {
		prof, err := profileRepo.GetOrCreate(ctx, userID)
		if err != nil {
			logger.Error("load profile",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		filterStopWords := prof.Effective(now).FilterStopWords

		totals, err := sourceRepo.AggregateWordFrequencies(ctx, userID)
		if err != nil {
			logger.Error("aggregate frequencies",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}

		items := make([]domain.WordPriority, 0, len(totals))
		for _, t := range totals {
			score := textproc.ContentScore(t.Text, t.Frequency, filterStopWords)
			items = append(items, domain.WordPriority{
				WordID:   t.WordID,
				Priority: textproc.Priority(score),
			})
		}

		if *dryRunFlag {
			logger.Info("dry run",
				slog.String("user_id", userID.String()),
				slog.Int("words", len(items)),
			)
			continue
		}

		changed, err := knowledgeRepo.UpdatePriorities(ctx, userID, items)
		if err != nil {
			logger.Error("update priorities",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		totalChanged += changed

		logger.Info("priorities recalculated",
			slog.String("user_id", userID.String()),
			slog.Int("words", len(items)),
			slog.Int64("changed", changed),
		)
	}

	logger.Info("recalculation completed",
		slog.Int("users", len(userIDs)),
		slog.Int64("total_changed", totalChanged),
	)
}
