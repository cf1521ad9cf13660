package domain

import (
	"time"

	"github.com/google/uuid"
)

// Word is a global dictionary entry shared across all users.
// Frequency is the sum of batch frequencies over every ingestion that
// contained the word; it is informational and never decremented.
type Word struct {
	ID              uuid.UUID
	Text            string
	Frequency       int64
	Definition      *string
	PartOfSpeech    *string
	Phonetic        *string
	AudioURL        *string
	ExampleSentence *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// WordUpsert reports one catalog upsert: the word's identity and whether
// the row was freshly inserted.
type WordUpsert struct {
	ID       uuid.UUID
	Text     string
	Inserted bool
}

// WordFrequencyTotal is a word's summed frequency across every source a
// user has ingested.
type WordFrequencyTotal struct {
	WordID    uuid.UUID
	Text      string
	Frequency int
}

// WordSourceLink records that a word appeared in a source with the given
// in-batch frequency. It is provenance only, not ownership.
type WordSourceLink struct {
	WordID    uuid.UUID
	SourceID  uuid.UUID
	Frequency int
}

// WordEnrichment holds optional dictionary data fetched for a word.
type WordEnrichment struct {
	Definition      *string
	PartOfSpeech    *string
	Phonetic        *string
	AudioURL        *string
	ExampleSentence *string
}

// IsEmpty reports whether the enrichment carries no data at all.
func (e WordEnrichment) IsEmpty() bool {
	return e.Definition == nil && e.PartOfSpeech == nil && e.Phonetic == nil &&
		e.AudioURL == nil && e.ExampleSentence == nil
}
