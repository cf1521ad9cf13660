package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/internal/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// ListSources returns the user's sources, newest first.
func (s *Service) ListSources(ctx context.Context, userID uuid.UUID, filter domain.SourceFilter) ([]*domain.Source, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	sources, err := s.sources.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	return sources, nil
}

// GetSource returns one source owned by the user, full content included.
func (s *Service) GetSource(ctx context.Context, userID, id uuid.UUID) (*domain.Source, error) {
	src, err := s.sources.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get source %s: %w", id, err)
	}
	return src, nil
}

// DeleteSource removes a source and its word links. Words stay in the
// catalog and the user's knowledge rows are untouched.
func (s *Service) DeleteSource(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.sources.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete source %s: %w", id, err)
	}
	s.log.Info("source deleted", "user_id", userID, "source_id", id)
	return nil
}
