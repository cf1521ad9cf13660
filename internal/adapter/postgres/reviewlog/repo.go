// Package reviewlog implements the review history repository using PostgreSQL.
// Rows are append-only; aggregates power the dashboard.
package reviewlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kelime/kelime-backend/internal/adapter/postgres"
	"github.com/kelime/kelime-backend/internal/domain"
)

// Repo provides review log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO review_logs (id, user_id, word_id, outcome, prev_state, interval_days, reviewed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Create appends a review log entry, assigning it a fresh ID.
func (r *Repo) Create(ctx context.Context, rl *domain.ReviewLog) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rl.ID = uuid.New()
	_, err := querier.Exec(ctx, createSQL,
		rl.ID, rl.UserID, rl.WordID, string(rl.Outcome), string(rl.PrevState),
		rl.IntervalDays, rl.ReviewedAt,
	)
	if err != nil {
		return postgres.MapError(err, "review_log", rl.ID)
	}
	return nil
}

const countTodaySQL = `
SELECT count(*) FROM review_logs
WHERE user_id = $1 AND reviewed_at >= $2`

// CountToday returns the count of reviews for a user since dayStart.
// dayStart is already in UTC.
func (r *Repo) CountToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countTodaySQL, userID, dayStart).Scan(&count); err != nil {
		return 0, fmt.Errorf("count today reviews: %w", err)
	}
	return count, nil
}

const dailyCountsSQL = `
SELECT
    date_trunc('day', reviewed_at AT TIME ZONE $4)::date AS review_date,
    count(*) AS review_count
FROM review_logs
WHERE user_id = $1 AND reviewed_at >= $2 AND reviewed_at < $3
GROUP BY review_date
ORDER BY review_date DESC`

// DailyCounts returns per-day review counts within [from, to), with days
// cut at midnight in the given IANA timezone. Days without reviews are
// absent; the caller fills gaps.
func (r *Repo) DailyCounts(ctx context.Context, userID uuid.UUID, from, to time.Time, timezone string) ([]domain.DayReviewCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, dailyCountsSQL, userID, from, to, timezone)
	if err != nil {
		return nil, fmt.Errorf("get daily review counts: %w", err)
	}
	defer rows.Close()

	var counts []domain.DayReviewCount
	for rows.Next() {
		var dc domain.DayReviewCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan daily review count: %w", err)
		}
		counts = append(counts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily review counts: %w", err)
	}

	if counts == nil {
		counts = []domain.DayReviewCount{}
	}
	return counts, nil
}

const reviewDaysSQL = `
SELECT DISTINCT date_trunc('day', reviewed_at AT TIME ZONE $3)::date AS review_date
FROM review_logs
WHERE user_id = $1 AND reviewed_at >= $2
ORDER BY review_date DESC`

// ReviewDays returns the distinct local calendar days with at least one
// review, newest first, going back no further than `from`. Used for streak
// computation.
func (r *Repo) ReviewDays(ctx context.Context, userID uuid.UUID, from time.Time, timezone string) ([]time.Time, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, reviewDaysSQL, userID, from, timezone)
	if err != nil {
		return nil, fmt.Errorf("get review days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan review day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review days: %w", err)
	}

	if days == nil {
		days = []time.Time{}
	}
	return days, nil
}
