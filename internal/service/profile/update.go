package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/internal/domain"
)

// UpdateInput carries the fields a user may change. Nil means untouched.
type UpdateInput struct {
	DailyNewWordTarget *int
	FilterStopWords    *bool
	RetentionRate      *float64
	KnownThreshold     *int
	Timezone           *string
}

// UpdateResult reports the outcome field by field: applied values land in
// Changes, rejected ones in Errors. Valid fields are applied even when
// other fields are rejected.
type UpdateResult struct {
	Profile *domain.UserProfile
	Changes map[string]any
	Errors  map[string]string
}

// Update applies a partial settings change. Pro-gated fields
// (daily_new_word_target, filter_stop_words) are rejected for free users;
// value bounds are enforced per field.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, in UpdateInput) (*UpdateResult, error) {
	prof, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	now := s.now()

	res := &UpdateResult{
		Profile: prof,
		Changes: map[string]any{},
		Errors:  map[string]string{},
	}
	var params domain.ProfileUpdate
	dirty := false

	if in.DailyNewWordTarget != nil {
		v := *in.DailyNewWordTarget
		switch {
		case !prof.CanModifyDailyTarget(now):
			res.Errors["daily_new_word_target"] = "requires an active Pro subscription"
		case v < domain.MinDailyNewWordTarget || v > domain.MaxDailyNewWordTarget:
			res.Errors["daily_new_word_target"] = fmt.Sprintf("must be between %d and %d",
				domain.MinDailyNewWordTarget, domain.MaxDailyNewWordTarget)
		default:
			params.DailyNewWordTarget = &v
			res.Changes["daily_new_word_target"] = v
			dirty = true
		}
	}

	if in.FilterStopWords != nil {
		v := *in.FilterStopWords
		if !prof.CanModifyStopWordFilter(now) {
			res.Errors["filter_stop_words"] = "requires an active Pro subscription"
		} else {
			params.FilterStopWords = &v
			res.Changes["filter_stop_words"] = v
			dirty = true
		}
	}

	if in.RetentionRate != nil {
		v := *in.RetentionRate
		if v < domain.MinRetentionRate || v > domain.MaxRetentionRate {
			res.Errors["retention_rate"] = fmt.Sprintf("must be between %g and %g",
				domain.MinRetentionRate, domain.MaxRetentionRate)
		} else {
			params.RetentionRate = &v
			res.Changes["retention_rate"] = v
			dirty = true
		}
	}

	if in.KnownThreshold != nil {
		v := *in.KnownThreshold
		if v < domain.MinKnownThreshold || v > domain.MaxKnownThreshold {
			res.Errors["known_threshold"] = fmt.Sprintf("must be between %d and %d",
				domain.MinKnownThreshold, domain.MaxKnownThreshold)
		} else {
			params.KnownThreshold = &v
			res.Changes["known_threshold"] = v
			dirty = true
		}
	}

	if in.Timezone != nil {
		v := *in.Timezone
		if _, err := time.LoadLocation(v); err != nil || v == "" {
			res.Errors["timezone"] = "unknown IANA timezone"
		} else {
			params.Timezone = &v
			res.Changes["timezone"] = v
			dirty = true
		}
	}

	if dirty {
		updated, err := s.profiles.Update(ctx, userID, params)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		res.Profile = updated

		s.log.Info("profile updated", "user_id", userID, "changed", len(res.Changes), "rejected", len(res.Errors))
	}

	return res, nil
}
