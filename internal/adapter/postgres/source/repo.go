// Package source implements the ingested-source repository using PostgreSQL.
// All reads and deletes are scoped by user_id.
package source

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kelime/kelime-backend/internal/adapter/postgres"
	"github.com/kelime/kelime-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides source persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new source repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO sources (id, user_id, title, source_type, content, processed, created_at)
VALUES ($1, $2, $3, $4, $5, false, now())
RETURNING created_at`

// Create inserts a new unprocessed source.
func (r *Repo) Create(ctx context.Context, src *domain.Source) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, createSQL,
		src.ID, src.UserID, src.Title, string(src.Type), src.Content,
	).Scan(&src.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "source", src.ID)
	}
	return nil
}

const sourceColumns = `id, user_id, title, source_type, content, processed,
       total_words, unique_words, known_words, new_words, coverage, processing_status, created_at`

// GetByID returns a source owned by the user.
// Returns domain.ErrNotFound if absent or owned by someone else.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Source, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := `SELECT ` + sourceColumns + ` FROM sources WHERE id = $1 AND user_id = $2`
	src, err := scanSource(querier.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, postgres.MapError(err, "source", id)
	}
	return src, nil
}

// ListByUser returns the user's sources, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, filter domain.SourceFilter) ([]*domain.Source, error) {
	builder := psql.
		Select("id", "user_id", "title", "source_type", "content", "processed",
			"total_words", "unique_words", "known_words", "new_words", "coverage", "processing_status", "created_at").
		From("sources").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if filter.Type != nil {
		builder = builder.Where(sq.Eq{"source_type": string(*filter.Type)})
	}
	if filter.Processed != nil {
		builder = builder.Where(sq.Eq{"processed": *filter.Processed})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sources query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []*domain.Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sources: %w", err)
	}

	if sources == nil {
		sources = []*domain.Source{}
	}
	return sources, nil
}

const deleteSQL = `DELETE FROM sources WHERE id = $1 AND user_id = $2`

// Delete removes a source owned by the user. Word links go with it via
// ON DELETE CASCADE; catalog words and knowledge rows stay.
// Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "source", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const setAnalysisSQL = `
UPDATE sources
SET processed = true,
    total_words = $2,
    unique_words = $3,
    known_words = $4,
    new_words = $5,
    coverage = $6,
    processing_status = $7
WHERE id = $1`

// SetAnalysis marks a source processed and stores its analysis snapshot.
// Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) SetAnalysis(ctx context.Context, id uuid.UUID, a domain.SourceAnalysis) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setAnalysisSQL,
		id, a.TotalWords, a.UniqueWords, a.KnownWords, a.NewWords, a.Coverage, a.ProcessingStatus,
	)
	if err != nil {
		return postgres.MapError(err, "source", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const linkWordSQL = `
INSERT INTO word_source_links (word_id, source_id, frequency)
VALUES ($1, $2, $3)
ON CONFLICT (word_id, source_id) DO UPDATE
SET frequency = EXCLUDED.frequency`

// LinkWords records per-source word frequencies for provenance.
func (r *Repo) LinkWords(ctx context.Context, sourceID uuid.UUID, links []domain.WordSourceLink) error {
	if len(links) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, l := range links {
		batch.Queue(linkWordSQL, l.WordID, sourceID, l.Frequency)
	}

	br := querier.SendBatch(ctx, batch)
	defer br.Close()

	for range links {
		if _, err := br.Exec(); err != nil {
			return postgres.MapError(err, "word_source_link", sourceID)
		}
	}
	return nil
}

const aggregateFrequenciesSQL = `
SELECT wsl.word_id, w.text, SUM(wsl.frequency)::int
FROM word_source_links wsl
JOIN sources s ON s.id = wsl.source_id
JOIN words w ON w.id = wsl.word_id
WHERE s.user_id = $1
GROUP BY wsl.word_id, w.text`

// AggregateWordFrequencies sums per-source link frequencies across all of
// the user's sources, yielding one total per word.
func (r *Repo) AggregateWordFrequencies(ctx context.Context, userID uuid.UUID) ([]domain.WordFrequencyTotal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, aggregateFrequenciesSQL, userID)
	if err != nil {
		return nil, postgres.MapError(err, "word_source_link", userID)
	}
	defer rows.Close()

	var totals []domain.WordFrequencyTotal
	for rows.Next() {
		var t domain.WordFrequencyTotal
		if err := rows.Scan(&t.WordID, &t.Text, &t.Frequency); err != nil {
			return nil, fmt.Errorf("scan frequency total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func scanSource(row pgx.Row) (*domain.Source, error) {
	var (
		src        domain.Source
		srcType    string
		totalWords *int
		uniqueWord *int
		knownWords *int
		newWords   *int
		coverage   *float64
		status     *string
	)
	err := row.Scan(
		&src.ID, &src.UserID, &src.Title, &srcType, &src.Content, &src.Processed,
		&totalWords, &uniqueWord, &knownWords, &newWords, &coverage, &status,
		&src.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	src.Type = domain.SourceType(srcType)

	if src.Processed && status != nil {
		src.Analysis = &domain.SourceAnalysis{
			TotalWords:       deref(totalWords),
			UniqueWords:      deref(uniqueWord),
			KnownWords:       deref(knownWords),
			NewWords:         deref(newWords),
			Coverage:         derefF(coverage),
			ProcessingStatus: *status,
		}
	}
	return &src, nil
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefF(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
