// Package profile implements the user profile repository using PostgreSQL.
// Profiles are created lazily on first touch.
package profile

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kelime/kelime-backend/internal/adapter/postgres"
	"github.com/kelime/kelime-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides user profile persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const profileColumns = `user_id, daily_new_word_target, words_learned_today, last_learning_date,
       is_pro, pro_expires_at, filter_stop_words, retention_rate, known_threshold, timezone,
       created_at, updated_at`

const getOrCreateSQL = `
INSERT INTO user_profiles (user_id, daily_new_word_target, filter_stop_words, retention_rate, known_threshold, timezone)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING ` + profileColumns

// GetOrCreate returns the user's profile, creating it with defaults on
// first touch. The no-op conflict update makes RETURNING yield the
// existing row.
func (r *Repo) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	def := domain.DefaultProfile(userID)
	p, err := scanProfile(querier.QueryRow(ctx, getOrCreateSQL,
		userID, def.DailyNewWordTarget, def.FilterStopWords, def.RetentionRate, def.KnownThreshold, def.Timezone,
	))
	if err != nil {
		return nil, postgres.MapError(err, "profile", userID)
	}
	return p, nil
}

// Update applies the non-nil fields and returns the fresh profile.
// Returns domain.ErrNotFound if the profile does not exist.
func (r *Repo) Update(ctx context.Context, userID uuid.UUID, params domain.ProfileUpdate) (*domain.UserProfile, error) {
	builder := psql.Update("user_profiles").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING " + profileColumns)

	if params.DailyNewWordTarget != nil {
		builder = builder.Set("daily_new_word_target", *params.DailyNewWordTarget)
	}
	if params.FilterStopWords != nil {
		builder = builder.Set("filter_stop_words", *params.FilterStopWords)
	}
	if params.RetentionRate != nil {
		builder = builder.Set("retention_rate", *params.RetentionRate)
	}
	if params.KnownThreshold != nil {
		builder = builder.Set("known_threshold", *params.KnownThreshold)
	}
	if params.Timezone != nil {
		builder = builder.Set("timezone", *params.Timezone)
	}
	if params.IsPro != nil {
		builder = builder.Set("is_pro", *params.IsPro)
	}
	if params.ProExpiresAt != nil {
		builder = builder.Set("pro_expires_at", *params.ProExpiresAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update profile query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProfile(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "profile", userID)
	}
	return p, nil
}

const incrementLearnedSQL = `
UPDATE user_profiles
SET words_learned_today = $2,
    last_learning_date = $3,
    updated_at = now()
WHERE user_id = $1`

// SetLearnedToday stores the daily counter and its date. The caller resets
// the counter when the learning day rolls over.
func (r *Repo) SetLearnedToday(ctx context.Context, userID uuid.UUID, count int, day time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, incrementLearnedSQL, userID, count, day)
	if err != nil {
		return postgres.MapError(err, "profile", userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}

// ListUserIDs returns every user with a profile row.
func (r *Repo) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, `SELECT user_id FROM user_profiles ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanProfile(row pgx.Row) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := row.Scan(
		&p.UserID, &p.DailyNewWordTarget, &p.WordsLearnedToday, &p.LastLearningDate,
		&p.IsPro, &p.ProExpiresAt, &p.FilterStopWords, &p.RetentionRate, &p.KnownThreshold,
		&p.Timezone, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
