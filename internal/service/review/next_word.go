package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/internal/domain"
)

// NextWordResult is the outcome of a word-selection request. Word is nil
// when there is nothing to study right now.
type NextWordResult struct {
	Word      *domain.Word
	Knowledge *domain.UserWordKnowledge

	// IsNew is true when the word was introduced by this call, i.e. it
	// just moved from NEW to LEARNING.
	IsNew bool

	// QuotaReached is true when no reviews are due and the daily
	// new-word budget is spent.
	QuotaReached bool

	// NewRemainingToday is how many new words the user may still start
	// today after this call.
	NewRemainingToday int
}

// NextWord picks the next word for the user to study. Due LEARNING words
// always come first, ordered by due time then priority. Only when nothing
// is due does a NEW word get introduced, subject to the daily new-word
// target; introduction flips the row to LEARNING and consumes one unit of
// the daily budget.
func (s *Service) NextWord(ctx context.Context, userID uuid.UUID) (*NextWordResult, error) {
	now := s.now()

	var res *NextWordResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// The daily counter must be read in the same transaction that
		// spends it; concurrent requests would otherwise overshoot the
		// target by one.
		prof, err := s.profiles.GetOrCreate(ctx, userID)
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}

		eff := prof.Effective(now)
		today := LocalDate(now, prof.Location())

		// The counter resets on the first request of a new local day.
		learnedToday := prof.WordsLearnedToday
		if prof.LastLearningDate == nil || !prof.LastLearningDate.Equal(today) {
			learnedToday = 0
		}
		remaining := eff.DailyNewWordTarget - learnedToday
		if remaining < 0 {
			remaining = 0
		}

		due, err := s.knowledge.GetDueLearning(ctx, userID, now, 1)
		if err != nil {
			return fmt.Errorf("get due words: %w", err)
		}
		if len(due) > 0 {
			k := due[0]
			w, err := s.words.GetByID(ctx, k.WordID)
			if err != nil {
				return fmt.Errorf("get word %s: %w", k.WordID, err)
			}
			res = &NextWordResult{Word: w, Knowledge: k, NewRemainingToday: remaining}
			return nil
		}

		if remaining == 0 {
			res = &NextWordResult{QuotaReached: true}
			return nil
		}

		fresh, err := s.knowledge.GetTopNew(ctx, userID, 1)
		if err != nil {
			return fmt.Errorf("get new words: %w", err)
		}
		if len(fresh) == 0 {
			res = &NextWordResult{NewRemainingToday: remaining}
			return nil
		}

		k := fresh[0]
		if err := s.knowledge.MarkLearning(ctx, k.ID, now); err != nil {
			return fmt.Errorf("mark learning %s: %w", k.ID, err)
		}
		k.State = domain.WordStateLearning
		k.Due = now

		if err := s.profiles.SetLearnedToday(ctx, userID, learnedToday+1, today); err != nil {
			return fmt.Errorf("update daily counter: %w", err)
		}

		w, err := s.words.GetByID(ctx, k.WordID)
		if err != nil {
			return fmt.Errorf("get word %s: %w", k.WordID, err)
		}
		res = &NextWordResult{Word: w, Knowledge: k, IsNew: true, NewRemainingToday: remaining - 1}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Word != nil {
		s.log.Info("next word selected",
			"user_id", userID,
			"word", res.Word.Text,
			"is_new", res.IsNew)
	}
	return res, nil
}
