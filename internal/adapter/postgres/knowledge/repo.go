// Package knowledge implements the per-user word knowledge ledger using
// PostgreSQL. One row per (user, word) tracks state, queue priority, and
// scheduling memory.
package knowledge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kelime/kelime-backend/internal/adapter/postgres"
	"github.com/kelime/kelime-backend/internal/domain"
)

// Repo provides knowledge ledger persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new knowledge repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Re-ingesting a word never lowers its queue position: the stored priority
// and the incoming one merge via GREATEST in a single statement.
const upsertPrioritySQL = `
INSERT INTO user_word_knowledge (id, user_id, word_id, state, priority, difficulty, due, created_at, updated_at)
VALUES ($1, $2, $3, 'NEW', $4, 5.0, now(), now(), now())
ON CONFLICT (user_id, word_id) DO UPDATE
SET priority = GREATEST(user_word_knowledge.priority, EXCLUDED.priority),
    updated_at = now()
RETURNING state, (xmax = 0) AS inserted`

// UpsertMergePriority creates missing ledger rows in NEW state and merges
// priorities into existing ones. Existing state, scheduling fields, and
// review history are never touched.
func (r *Repo) UpsertMergePriority(ctx context.Context, userID uuid.UUID, items []domain.WordPriority) ([]domain.KnowledgeUpsert, error) {
	if len(items) == 0 {
		return []domain.KnowledgeUpsert{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(upsertPrioritySQL, uuid.New(), userID, it.WordID, it.Priority)
	}

	br := querier.SendBatch(ctx, batch)
	defer br.Close()

	results := make([]domain.KnowledgeUpsert, 0, len(items))
	for _, it := range items {
		var (
			state    string
			inserted bool
		)
		if err := br.QueryRow().Scan(&state, &inserted); err != nil {
			return nil, postgres.MapError(err, "knowledge", it.WordID)
		}
		results = append(results, domain.KnowledgeUpsert{
			WordID:    it.WordID,
			PrevState: domain.WordState(state),
			Inserted:  inserted,
		})
	}

	return results, nil
}

const knowledgeColumns = `id, user_id, word_id, state, priority, stability, difficulty,
       lapses, review_count, successful_reviews, due, last_review, created_at, updated_at`

// GetByUserWord returns the ledger row for (userID, wordID).
// Returns domain.ErrNotFound if the user has never seen the word.
func (r *Repo) GetByUserWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordKnowledge, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := `SELECT ` + knowledgeColumns + ` FROM user_word_knowledge WHERE user_id = $1 AND word_id = $2`
	k, err := scanKnowledge(querier.QueryRow(ctx, query, userID, wordID))
	if err != nil {
		return nil, postgres.MapError(err, "knowledge", wordID)
	}
	return k, nil
}

const dueLearningSQL = `
SELECT ` + knowledgeColumns + `
FROM user_word_knowledge
WHERE user_id = $1 AND state = 'LEARNING' AND due <= $2
ORDER BY due ASC, priority DESC
LIMIT $3`

// GetDueLearning returns LEARNING rows whose due time has passed, most
// overdue first, higher priority breaking ties.
func (r *Repo) GetDueLearning(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*domain.UserWordKnowledge, error) {
	return r.list(ctx, dueLearningSQL, userID, now, limit)
}

const topNewSQL = `
SELECT ` + knowledgeColumns + `
FROM user_word_knowledge
WHERE user_id = $1 AND state = 'NEW'
ORDER BY priority DESC, created_at ASC
LIMIT $2`

// GetTopNew returns NEW rows ordered by priority, oldest first among equals.
func (r *Repo) GetTopNew(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.UserWordKnowledge, error) {
	return r.list(ctx, topNewSQL, userID, limit)
}

const markLearningSQL = `
UPDATE user_word_knowledge
SET state = 'LEARNING', due = $2, updated_at = now()
WHERE id = $1 AND state = 'NEW'`

// MarkLearning transitions a NEW row to LEARNING with an immediate due time.
// Returns domain.ErrConflict if the row is no longer NEW.
func (r *Repo) MarkLearning(ctx context.Context, id uuid.UUID, due time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markLearningSQL, id, due)
	if err != nil {
		return postgres.MapError(err, "knowledge", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("knowledge %s: %w", id, domain.ErrConflict)
	}
	return nil
}

const updateSRSSQL = `
UPDATE user_word_knowledge
SET state = $2,
    stability = $3,
    difficulty = $4,
    lapses = $5,
    review_count = $6,
    successful_reviews = $7,
    due = $8,
    last_review = $9,
    updated_at = now()
WHERE id = $1`

// UpdateSRS stores the full scheduling state after a review.
// Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) UpdateSRS(ctx context.Context, id uuid.UUID, p domain.SRSUpdateParams) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateSRSSQL,
		id, string(p.State), p.Stability, p.Difficulty,
		p.Lapses, p.ReviewCount, p.SuccessfulReviews, p.Due, p.LastReview,
	)
	if err != nil {
		return postgres.MapError(err, "knowledge", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("knowledge %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const setStateSQL = `
INSERT INTO user_word_knowledge (id, user_id, word_id, state, priority, difficulty, due, created_at, updated_at)
VALUES ($1, $2, $3, $4, 0, 5.0, $5, now(), now())
ON CONFLICT (user_id, word_id) DO UPDATE
SET state = EXCLUDED.state,
    due = EXCLUDED.due,
    updated_at = now()
RETURNING ` + knowledgeColumns

// SetState forces a row into the given state (mark known, ignore),
// creating the row if the user has never seen the word.
func (r *Repo) SetState(ctx context.Context, userID, wordID uuid.UUID, state domain.WordState, due time.Time) (*domain.UserWordKnowledge, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	k, err := scanKnowledge(querier.QueryRow(ctx, setStateSQL,
		uuid.New(), userID, wordID, string(state), due,
	))
	if err != nil {
		return nil, postgres.MapError(err, "knowledge", wordID)
	}
	return k, nil
}

const countByStatusSQL = `
SELECT
    count(*) FILTER (WHERE state = 'NEW') AS new_count,
    count(*) FILTER (WHERE state = 'LEARNING') AS learning_count,
    count(*) FILTER (WHERE state = 'KNOWN') AS known_count,
    count(*) FILTER (WHERE state = 'IGNORED') AS ignored_count,
    count(*) AS total
FROM user_word_knowledge
WHERE user_id = $1`

// CountByStatus returns per-state row counts for the user.
func (r *Repo) CountByStatus(ctx context.Context, userID uuid.UUID) (domain.KnowledgeStatusCounts, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var counts domain.KnowledgeStatusCounts
	err := querier.QueryRow(ctx, countByStatusSQL, userID).Scan(
		&counts.New, &counts.Learning, &counts.Known, &counts.Ignored, &counts.Total,
	)
	if err != nil {
		return domain.KnowledgeStatusCounts{}, fmt.Errorf("count knowledge by status: %w", err)
	}
	return counts, nil
}

const countDueSQL = `
SELECT count(*) FROM user_word_knowledge
WHERE user_id = $1 AND state = 'LEARNING' AND due <= $2`

// CountDue returns the number of LEARNING rows due at `now`.
func (r *Repo) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countDueSQL, userID, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("count due knowledge: %w", err)
	}
	return count, nil
}

const coveredByWordIDsSQL = `
SELECT word_id FROM user_word_knowledge
WHERE user_id = $1 AND word_id = ANY($2::uuid[]) AND state IN ('KNOWN', 'IGNORED')`

// CoveredWordIDs returns the subset of wordIDs the user already covers
// (KNOWN or IGNORED).
func (r *Repo) CoveredWordIDs(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	covered := make(map[uuid.UUID]struct{})
	if len(wordIDs) == 0 {
		return covered, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, coveredByWordIDsSQL, userID, wordIDs)
	if err != nil {
		return nil, fmt.Errorf("list covered word ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan covered word id: %w", err)
		}
		covered[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate covered word ids: %w", err)
	}
	return covered, nil
}

const updatePrioritySQL = `
UPDATE user_word_knowledge
SET priority = $3, updated_at = now()
WHERE user_id = $1 AND word_id = $2 AND priority <> $3`

// UpdatePriorities overwrites stored priorities with freshly computed
// ones, skipping rows that already hold the target value. Returns the
// number of rows changed.
func (r *Repo) UpdatePriorities(ctx context.Context, userID uuid.UUID, items []domain.WordPriority) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(updatePrioritySQL, userID, it.WordID, it.Priority)
	}

	br := querier.SendBatch(ctx, batch)
	defer br.Close()

	var changed int64
	for _, it := range items {
		tag, err := br.Exec()
		if err != nil {
			return changed, postgres.MapError(err, "knowledge", it.WordID)
		}
		changed += tag.RowsAffected()
	}
	return changed, nil
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]*domain.UserWordKnowledge, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list knowledge: %w", err)
	}
	defer rows.Close()

	var out []*domain.UserWordKnowledge
	for rows.Next() {
		k, err := scanKnowledge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan knowledge: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate knowledge: %w", err)
	}

	if out == nil {
		out = []*domain.UserWordKnowledge{}
	}
	return out, nil
}

func scanKnowledge(row pgx.Row) (*domain.UserWordKnowledge, error) {
	var (
		k     domain.UserWordKnowledge
		state string
	)
	err := row.Scan(
		&k.ID, &k.UserID, &k.WordID, &state, &k.Priority, &k.Stability, &k.Difficulty,
		&k.Lapses, &k.ReviewCount, &k.SuccessfulReviews, &k.Due, &k.LastReview,
		&k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	k.State = domain.WordState(state)
	return &k, nil
}
