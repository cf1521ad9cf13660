package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/internal/domain"
)

// ReviewResult describes the scheduling outcome of a recorded review.
type ReviewResult struct {
	Knowledge    *domain.UserWordKnowledge
	IntervalDays float64
	Promoted     bool
}

// RecordReview applies a review outcome to a word the user is actively
// studying. NEW words must go through NextWord first; IGNORED words
// cannot be reviewed at all.
func (s *Service) RecordReview(ctx context.Context, userID, wordID uuid.UUID, outcome domain.ReviewOutcome) (*ReviewResult, error) {
	if !outcome.IsValid() {
		return nil, domain.NewValidationError("outcome", "must be CORRECT or INCORRECT")
	}
	now := s.now()

	prof, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	k, err := s.knowledge.GetByUserWord(ctx, userID, wordID)
	if err != nil {
		return nil, fmt.Errorf("get knowledge for word %s: %w", wordID, err)
	}
	switch k.State {
	case domain.WordStateNew:
		return nil, domain.NewValidationError("word_id", "word has not been studied yet")
	case domain.WordStateIgnored:
		return nil, domain.NewValidationError("word_id", "word is ignored")
	}

	out := CalculateSRS(SRSInput{
		Outcome:   outcome,
		Knowledge: *k,
		Retention: prof.RetentionRate,
		Threshold: prof.KnownThreshold,
		Now:       now,
		Config:    s.srsConfig,
	})

	prevState := k.State
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.knowledge.UpdateSRS(ctx, k.ID, out.Params); err != nil {
			return fmt.Errorf("update srs: %w", err)
		}
		if err := s.reviews.Create(ctx, &domain.ReviewLog{
			UserID:       userID,
			WordID:       wordID,
			Outcome:      outcome,
			PrevState:    prevState,
			IntervalDays: out.IntervalDays,
			ReviewedAt:   now,
		}); err != nil {
			return fmt.Errorf("create review log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated := *k
	updated.State = out.Params.State
	updated.Stability = out.Params.Stability
	updated.Difficulty = out.Params.Difficulty
	updated.Lapses = out.Params.Lapses
	updated.ReviewCount = out.Params.ReviewCount
	updated.SuccessfulReviews = out.Params.SuccessfulReviews
	updated.Due = out.Params.Due
	updated.LastReview = out.Params.LastReview

	s.log.Info("review recorded",
		"user_id", userID,
		"word_id", wordID,
		"outcome", outcome,
		"state", updated.State,
		"interval_days", out.IntervalDays,
		"promoted", out.Promoted)

	return &ReviewResult{
		Knowledge:    &updated,
		IntervalDays: out.IntervalDays,
		Promoted:     out.Promoted,
	}, nil
}
