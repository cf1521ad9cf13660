package domain

import (
	"time"

	"github.com/google/uuid"
)

// Defaults and bounds for per-user learning settings. Free accounts are
// pinned to the defaults; Pro accounts may customize within the bounds.
const (
	DefaultDailyNewWordTarget = 20
	MinDailyNewWordTarget     = 5
	MaxDailyNewWordTarget     = 100

	DefaultRetentionRate = 0.9
	MinRetentionRate     = 0.8
	MaxRetentionRate     = 0.95

	DefaultKnownThreshold = 5
	MinKnownThreshold     = 3
	MaxKnownThreshold     = 10
)

// UserProfile holds per-user learning settings and the daily new-word
// counter. Users themselves live in the upstream identity system; only
// their UUID is known here.
type UserProfile struct {
	UserID             uuid.UUID
	DailyNewWordTarget int
	WordsLearnedToday  int
	LastLearningDate   *time.Time
	IsPro              bool
	ProExpiresAt       *time.Time
	FilterStopWords    bool
	RetentionRate      float64
	KnownThreshold     int
	Timezone           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ProfileUpdate carries profile fields to change. Nil fields are left
// as-is. ProExpiresAt is doubly indirect so the expiry can be cleared.
type ProfileUpdate struct {
	DailyNewWordTarget *int
	FilterStopWords    *bool
	RetentionRate      *float64
	KnownThreshold     *int
	Timezone           *string
	IsPro              *bool
	ProExpiresAt       **time.Time
}

// DefaultProfile returns a UserProfile with free-tier defaults.
func DefaultProfile(userID uuid.UUID) UserProfile {
	return UserProfile{
		UserID:             userID,
		DailyNewWordTarget: DefaultDailyNewWordTarget,
		FilterStopWords:    true,
		RetentionRate:      DefaultRetentionRate,
		KnownThreshold:     DefaultKnownThreshold,
		Timezone:           "UTC",
	}
}

// IsProActive reports whether the user has an active Pro subscription at
// the given time. A Pro flag without an expiry means unlimited Pro.
func (p *UserProfile) IsProActive(now time.Time) bool {
	if !p.IsPro {
		return false
	}
	if p.ProExpiresAt == nil {
		return true
	}
	return now.Before(*p.ProExpiresAt)
}

// EffectiveSettings is the actually-applied value of the Pro-gated
// preferences after free/Pro gating.
type EffectiveSettings struct {
	FilterStopWords    bool
	DailyNewWordTarget int
}

// Effective resolves the Pro-gated preferences: free users always get
// stop-word filtering and the default daily target regardless of what is
// stored on the profile.
func (p *UserProfile) Effective(now time.Time) EffectiveSettings {
	if !p.IsProActive(now) {
		return EffectiveSettings{
			FilterStopWords:    true,
			DailyNewWordTarget: DefaultDailyNewWordTarget,
		}
	}
	return EffectiveSettings{
		FilterStopWords:    p.FilterStopWords,
		DailyNewWordTarget: p.DailyNewWordTarget,
	}
}

// CanModifyDailyTarget reports whether the user may change the daily
// new-word target (Pro only).
func (p *UserProfile) CanModifyDailyTarget(now time.Time) bool {
	return p.IsProActive(now)
}

// CanModifyStopWordFilter reports whether the user may change stop-word
// filtering (Pro only).
func (p *UserProfile) CanModifyStopWordFilter(now time.Time) bool {
	return p.IsProActive(now)
}

// Location parses the profile timezone, falling back to UTC.
func (p *UserProfile) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
