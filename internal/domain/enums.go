package domain

// WordState represents the learning state of a (user, word) pair.
type WordState string

const (
	WordStateNew      WordState = "NEW"
	WordStateLearning WordState = "LEARNING"
	WordStateKnown    WordState = "KNOWN"
	WordStateIgnored  WordState = "IGNORED"
)

func (s WordState) String() string { return string(s) }

func (s WordState) IsValid() bool {
	switch s {
	case WordStateNew, WordStateLearning, WordStateKnown, WordStateIgnored:
		return true
	}
	return false
}

// IsCovered reports whether the state counts toward source coverage:
// the user either knows the word or has explicitly dismissed it.
func (s WordState) IsCovered() bool {
	return s == WordStateKnown || s == WordStateIgnored
}

// SourceType identifies where the ingested text came from.
type SourceType string

const (
	SourceTypeText      SourceType = "TEXT"
	SourceTypeURL       SourceType = "URL"
	SourceTypeYouTube   SourceType = "YOUTUBE"
	SourceTypePDF       SourceType = "PDF"
	SourceTypeSRT       SourceType = "SRT"
	SourceTypeExtension SourceType = "EXTENSION"
)

func (t SourceType) String() string { return string(t) }

func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeText, SourceTypeURL, SourceTypeYouTube,
		SourceTypePDF, SourceTypeSRT, SourceTypeExtension:
		return true
	}
	return false
}

// ReviewOutcome represents the user's answer during a review.
type ReviewOutcome string

const (
	ReviewOutcomeCorrect   ReviewOutcome = "CORRECT"
	ReviewOutcomeIncorrect ReviewOutcome = "INCORRECT"
)

func (o ReviewOutcome) String() string { return string(o) }

func (o ReviewOutcome) IsValid() bool {
	switch o {
	case ReviewOutcomeCorrect, ReviewOutcomeIncorrect:
		return true
	}
	return false
}
