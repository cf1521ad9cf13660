// Package ingest turns raw source text into catalog words and per-user
// study priorities, recording provenance along the way.
package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/internal/config"
	"github.com/kelime/kelime-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	UpsertBatch(ctx context.Context, counts map[string]int, order []string) ([]domain.WordUpsert, error)
	UpdateEnrichment(ctx context.Context, id uuid.UUID, e domain.WordEnrichment) error
}

type knowledgeRepo interface {
	UpsertMergePriority(ctx context.Context, userID uuid.UUID, items []domain.WordPriority) ([]domain.KnowledgeUpsert, error)
}

type sourceRepo interface {
	Create(ctx context.Context, src *domain.Source) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Source, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter domain.SourceFilter) ([]*domain.Source, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	SetAnalysis(ctx context.Context, id uuid.UUID, a domain.SourceAnalysis) error
	LinkWords(ctx context.Context, sourceID uuid.UUID, links []domain.WordSourceLink) error
}

type profileRepo interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
}

// enricher fetches optional dictionary data for a word. A nil result with
// a nil error means the dictionary has no entry.
type enricher interface {
	Fetch(ctx context.Context, word string) (*domain.WordEnrichment, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the ingestion business logic.
type Service struct {
	words     wordRepo
	knowledge knowledgeRepo
	sources   sourceRepo
	profiles  profileRepo
	enricher  enricher
	tx        txManager
	log       *slog.Logger
	cfg       config.IngestConfig
	now       func() time.Time
}

// NewService creates a new ingest service. The enricher may be nil when
// definition fetching is disabled.
func NewService(
	log *slog.Logger,
	words wordRepo,
	knowledge knowledgeRepo,
	sources sourceRepo,
	profiles profileRepo,
	enricher enricher,
	tx txManager,
	cfg config.IngestConfig,
) *Service {
	return &Service{
		words:     words,
		knowledge: knowledge,
		sources:   sources,
		profiles:  profiles,
		enricher:  enricher,
		tx:        tx,
		log:       log.With("service", "ingest"),
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}
