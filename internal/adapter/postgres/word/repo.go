// Package word implements the global word catalog repository using PostgreSQL.
// The catalog is shared across users; batch upserts accumulate frequency.
package word

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kelime/kelime-backend/internal/adapter/postgres"
	"github.com/kelime/kelime-backend/internal/domain"
)

// Repo provides word catalog persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const upsertSQL = `
INSERT INTO words (id, text, frequency, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (text) DO UPDATE
SET frequency = words.frequency + EXCLUDED.frequency,
    updated_at = now()
RETURNING id, text, (xmax = 0) AS inserted`

// UpsertBatch inserts new words and adds batch frequency to existing ones.
// Input texts must already be normalized. Results come back in input order.
func (r *Repo) UpsertBatch(ctx context.Context, counts map[string]int, order []string) ([]domain.WordUpsert, error) {
	if len(order) == 0 {
		return []domain.WordUpsert{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, text := range order {
		batch.Queue(upsertSQL, uuid.New(), text, counts[text])
	}

	br := querier.SendBatch(ctx, batch)
	defer br.Close()

	results := make([]domain.WordUpsert, 0, len(order))
	for _, text := range order {
		var res domain.WordUpsert
		if err := br.QueryRow().Scan(&res.ID, &res.Text, &res.Inserted); err != nil {
			return nil, postgres.MapError(err, "word", text)
		}
		results = append(results, res)
	}

	return results, nil
}

const getByIDSQL = `
SELECT id, text, frequency, definition, part_of_speech, phonetic, audio_url, example_sentence,
       created_at, updated_at
FROM words
WHERE id = $1`

// GetByID returns a word by ID.
// Returns domain.ErrNotFound if no such word exists.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	w, err := scanWord(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "word", id)
	}
	return w, nil
}

const getByTextSQL = `
SELECT id, text, frequency, definition, part_of_speech, phonetic, audio_url, example_sentence,
       created_at, updated_at
FROM words
WHERE text = $1`

// GetByText returns a word by its normalized text.
// Returns domain.ErrNotFound if no such word exists.
func (r *Repo) GetByText(ctx context.Context, text string) (*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	w, err := scanWord(querier.QueryRow(ctx, getByTextSQL, text))
	if err != nil {
		return nil, postgres.MapError(err, "word", text)
	}
	return w, nil
}

const updateEnrichmentSQL = `
UPDATE words
SET definition = $2,
    part_of_speech = $3,
    phonetic = $4,
    audio_url = $5,
    example_sentence = $6,
    updated_at = now()
WHERE id = $1`

// UpdateEnrichment stores dictionary data for a word.
// Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) UpdateEnrichment(ctx context.Context, id uuid.UUID, e domain.WordEnrichment) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateEnrichmentSQL,
		id, e.Definition, e.PartOfSpeech, e.Phonetic, e.AudioURL, e.ExampleSentence,
	)
	if err != nil {
		return postgres.MapError(err, "word", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const listUnenrichedSQL = `
SELECT id, text, frequency, definition, part_of_speech, phonetic, audio_url, example_sentence,
       created_at, updated_at
FROM words
WHERE definition IS NULL
ORDER BY frequency DESC
LIMIT $1`

// ListUnenriched returns the most frequent words still missing dictionary
// data, for background enrichment.
func (r *Repo) ListUnenriched(ctx context.Context, limit int) ([]*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listUnenrichedSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list unenriched words: %w", err)
	}
	defer rows.Close()

	var words []*domain.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}

	if words == nil {
		words = []*domain.Word{}
	}
	return words, nil
}

func scanWord(row pgx.Row) (*domain.Word, error) {
	var w domain.Word
	err := row.Scan(
		&w.ID, &w.Text, &w.Frequency,
		&w.Definition, &w.PartOfSpeech, &w.Phonetic, &w.AudioURL, &w.ExampleSentence,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
