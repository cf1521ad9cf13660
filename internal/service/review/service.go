// Package review implements the study flow: word selection, review
// recording with spaced-repetition scheduling, and the dashboard.
package review

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

type knowledgeRepo interface {
	GetByUserWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordKnowledge, error)
	GetDueLearning(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*domain.UserWordKnowledge, error)
	GetTopNew(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.UserWordKnowledge, error)
	MarkLearning(ctx context.Context, id uuid.UUID, due time.Time) error
	UpdateSRS(ctx context.Context, id uuid.UUID, params domain.SRSUpdateParams) error
	SetState(ctx context.Context, userID, wordID uuid.UUID, state domain.WordState, due time.Time) (*domain.UserWordKnowledge, error)
	CountByStatus(ctx context.Context, userID uuid.UUID) (domain.KnowledgeStatusCounts, error)
	CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
}

type wordRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	GetByText(ctx context.Context, text string) (*domain.Word, error)
}

type profileRepo interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
	SetLearnedToday(ctx context.Context, userID uuid.UUID, count int, day time.Time) error
}

type reviewLogRepo interface {
	Create(ctx context.Context, rl *domain.ReviewLog) error
	CountToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)
	DailyCounts(ctx context.Context, userID uuid.UUID, from, to time.Time, timezone string) ([]domain.DayReviewCount, error)
	ReviewDays(ctx context.Context, userID uuid.UUID, from time.Time, timezone string) ([]time.Time, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the review business logic.
type Service struct {
	knowledge knowledgeRepo
	words     wordRepo
	profiles  profileRepo
	reviews   reviewLogRepo
	tx        txManager
	log       *slog.Logger
	srsConfig config.SRSConfig
	now       func() time.Time
}

// NewService creates a new review service.
func NewService(
	log *slog.Logger,
	knowledge knowledgeRepo,
	words wordRepo,
	profiles profileRepo,
	reviews reviewLogRepo,
	tx txManager,
	srsConfig config.SRSConfig,
) *Service {
	return &Service{
		knowledge: knowledge,
		words:     words,
		profiles:  profiles,
		reviews:   reviews,
		tx:        tx,
		log:       log.With("service", "review"),
		srsConfig: srsConfig,
		now:       func() time.Time { return time.Now().UTC() },
	}
}
