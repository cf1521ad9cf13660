package domain

import (
	"time"

	"github.com/google/uuid"
)

// Processing status values recorded on a source's analysis snapshot.
const (
	ProcessingStatusSuccess      = "success"
	ProcessingStatusNoWordsFound = "no_words_found"
)

// SourceAnalysis is the derived snapshot of one ingestion batch.
type SourceAnalysis struct {
	TotalWords       int
	UniqueWords      int
	KnownWords       int
	NewWords         int
	Coverage         float64
	ProcessingStatus string
}

// SourceFilter narrows source listings.
type SourceFilter struct {
	Type      *SourceType
	Processed *bool
	Limit     int
	Offset    int
}

// Source is one ingestion event: the provenance record for the batch of
// words it contributed. Immutable after creation except the analysis
// snapshot and the processed flag. Analysis is nil until the source has
// been processed.
type Source struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Type      SourceType
	Content   string
	Processed bool
	Analysis  *SourceAnalysis
	CreatedAt time.Time
}
