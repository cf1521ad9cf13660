package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kelime/kelime-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedWord inserts a word into the global catalog and returns it.
func SeedWord(t *testing.T, pool *pgxpool.Pool, text string, frequency int64) domain.Word {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	word := domain.Word{
		ID:        uuid.New(),
		Text:      text,
		Frequency: frequency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO words (id, text, frequency, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		word.ID, word.Text, word.Frequency, word.CreatedAt, word.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWord insert: %v", err)
	}

	return word
}

// SeedProfile inserts a default profile for a fresh user ID and returns it.
func SeedProfile(t *testing.T, pool *pgxpool.Pool) domain.UserProfile {
	t.Helper()
	ctx := context.Background()

	profile := domain.DefaultProfile(uuid.New())
	now := time.Now().UTC().Truncate(time.Microsecond)
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := pool.Exec(ctx,
		`INSERT INTO user_profiles (user_id, daily_new_word_target, words_learned_today, is_pro,
		                            filter_stop_words, retention_rate, known_threshold, timezone,
		                            created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		profile.UserID, profile.DailyNewWordTarget, profile.WordsLearnedToday, profile.IsPro,
		profile.FilterStopWords, profile.RetentionRate, profile.KnownThreshold, profile.Timezone,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile insert: %v", err)
	}

	return profile
}

// SeedSource inserts an unprocessed source for the user and returns it.
func SeedSource(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Source {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	src := domain.Source{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "Source " + suffix,
		Type:      domain.SourceTypeText,
		Content:   "sample content " + suffix,
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO sources (id, user_id, title, source_type, content, processed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		src.ID, src.UserID, src.Title, string(src.Type), src.Content, src.Processed, src.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSource insert: %v", err)
	}

	return src
}

// SeedKnowledge inserts a knowledge row for (userID, wordID) in the given
// state and returns it.
func SeedKnowledge(t *testing.T, pool *pgxpool.Pool, userID, wordID uuid.UUID, state domain.WordState, priority int) domain.UserWordKnowledge {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	k := domain.UserWordKnowledge{
		ID:         uuid.New(),
		UserID:     userID,
		WordID:     wordID,
		State:      state,
		Priority:   priority,
		Difficulty: 5.0,
		Due:        now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO user_word_knowledge (id, user_id, word_id, state, priority, stability, difficulty,
		                                  lapses, review_count, successful_reviews, due, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		k.ID, k.UserID, k.WordID, string(k.State), k.Priority, k.Stability, k.Difficulty,
		k.Lapses, k.ReviewCount, k.SuccessfulReviews, k.Due, k.CreatedAt, k.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedKnowledge insert: %v", err)
	}

	return k
}
