package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserWordKnowledge is the per-user, per-word learning state. Exactly one
// row exists per (user, word) pair; it is created on first sighting and
// mutated by both ingestion (priority merge) and review outcomes.
type UserWordKnowledge struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	WordID            uuid.UUID
	State             WordState
	Priority          int
	Stability         float64
	Difficulty        float64
	Lapses            int
	ReviewCount       int
	SuccessfulReviews int
	Due               time.Time
	LastReview        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsDue reports whether the word needs review at the given time.
// NEW words are always eligible; IGNORED words never are.
func (k *UserWordKnowledge) IsDue(now time.Time) bool {
	switch k.State {
	case WordStateIgnored:
		return false
	case WordStateNew:
		return true
	}
	return !k.Due.After(now)
}

// WordPriority is one word's computed priority within an ingestion batch.
type WordPriority struct {
	WordID   uuid.UUID
	Priority int
}

// KnowledgeUpsert reports the ledger row state after a priority merge.
// PrevState is the state the row had before the merge (NEW for fresh rows).
type KnowledgeUpsert struct {
	WordID    uuid.UUID
	PrevState WordState
	Inserted  bool
}

// SRSUpdateParams holds the scheduling fields to write after a review.
type SRSUpdateParams struct {
	State             WordState
	Stability         float64
	Difficulty        float64
	Lapses            int
	ReviewCount       int
	SuccessfulReviews int
	Due               time.Time
	LastReview        *time.Time
}

// ReviewLog records a single review event. Rows are append-only.
type ReviewLog struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	WordID       uuid.UUID
	Outcome      ReviewOutcome
	PrevState    WordState
	IntervalDays float64
	ReviewedAt   time.Time
}

// KnowledgeStatusCounts holds the count of knowledge rows per state.
type KnowledgeStatusCounts struct {
	New      int
	Learning int
	Known    int
	Ignored  int
	Total    int
}

// Dashboard holds aggregated learning statistics for a user.
type Dashboard struct {
	DueCount          int
	NewCount          int
	WordsLearnedToday int
	ReviewedToday     int
	Streak            int
	StatusCounts      KnowledgeStatusCounts
}

// DayReviewCount holds the review count for a specific calendar day.
type DayReviewCount struct {
	Date  time.Time
	Count int
}
