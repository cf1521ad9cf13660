// Package profile manages per-user learning settings and their free/Pro
// gating.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/internal/domain"
)

type profileRepo interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
	Update(ctx context.Context, userID uuid.UUID, params domain.ProfileUpdate) (*domain.UserProfile, error)
}

// Service implements the profile business logic.
type Service struct {
	profiles profileRepo
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new profile service.
func NewService(log *slog.Logger, profiles profileRepo) *Service {
	return &Service{
		profiles: profiles,
		log:      log.With("service", "profile"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the user's profile, creating it with free-tier defaults on
// first access.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	prof, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return prof, nil
}
