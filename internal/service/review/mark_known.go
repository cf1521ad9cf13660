package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/internal/domain"
)

// MarkKnown flags a catalog word as already known by the user, pushing
// its next review far into the future. Works regardless of the word's
// current state; creates the knowledge row if the user never saw the
// word in a source.
func (s *Service) MarkKnown(ctx context.Context, userID uuid.UUID, wordText string) (*domain.UserWordKnowledge, error) {
	w, err := s.resolveWord(ctx, wordText)
	if err != nil {
		return nil, err
	}

	due := s.now().AddDate(0, 0, s.srsConfig.MarkKnownDueDays)
	k, err := s.knowledge.SetState(ctx, userID, w.ID, domain.WordStateKnown, due)
	if err != nil {
		return nil, fmt.Errorf("mark known %q: %w", w.Text, err)
	}

	s.log.Info("word marked known", "user_id", userID, "word", w.Text)
	return k, nil
}

// Ignore excludes a catalog word from the user's study queue entirely.
func (s *Service) Ignore(ctx context.Context, userID uuid.UUID, wordText string) (*domain.UserWordKnowledge, error) {
	w, err := s.resolveWord(ctx, wordText)
	if err != nil {
		return nil, err
	}

	k, err := s.knowledge.SetState(ctx, userID, w.ID, domain.WordStateIgnored, s.now())
	if err != nil {
		return nil, fmt.Errorf("ignore %q: %w", w.Text, err)
	}

	s.log.Info("word ignored", "user_id", userID, "word", w.Text)
	return k, nil
}

func (s *Service) resolveWord(ctx context.Context, wordText string) (*domain.Word, error) {
	text := domain.NormalizeWord(wordText)
	if text == "" {
		return nil, domain.NewValidationError("word", "is required")
	}
	w, err := s.words.GetByText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("get word %q: %w", text, err)
	}
	return w, nil
}
