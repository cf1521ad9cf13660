package review

import (
	"math"
	"time"

	"github.com/kelime/kelime-backend/internal/config"
	"github.com/kelime/kelime-backend/internal/domain"
)

// baseRetention anchors the interval formula: a stability of S days gives
// an S-day interval at 90% target retention.
const baseRetention = 0.9

// SRSInput holds all data needed for a scheduling calculation. Pure value.
type SRSInput struct {
	Outcome   domain.ReviewOutcome
	Knowledge domain.UserWordKnowledge
	Retention float64
	Threshold int
	Now       time.Time
	Config    config.SRSConfig
}

// SRSOutput is the result of a scheduling calculation.
type SRSOutput struct {
	Params       domain.SRSUpdateParams
	IntervalDays float64
	Promoted     bool
}

// CalculateSRS is a pure function. No DB, no context, no logger.
// All decisions are deterministic based on input parameters.
func CalculateSRS(in SRSInput) SRSOutput {
	k := in.Knowledge
	now := in.Now

	k.ReviewCount++

	if in.Outcome == domain.ReviewOutcomeIncorrect {
		k.Lapses++
		k.Stability = math.Max(0.1, k.Stability*0.2)
		k.Difficulty = math.Min(10.0, k.Difficulty+0.5)

		due := now.Add(in.Config.FailureRetryDelay)
		return SRSOutput{
			Params: domain.SRSUpdateParams{
				State:             domain.WordStateLearning,
				Stability:         k.Stability,
				Difficulty:        k.Difficulty,
				Lapses:            k.Lapses,
				ReviewCount:       k.ReviewCount,
				SuccessfulReviews: k.SuccessfulReviews,
				Due:               due,
				LastReview:        &now,
			},
			IntervalDays: in.Config.FailureRetryDelay.Hours() / 24,
		}
	}

	// First success starts at one day of stability; later successes grow
	// it by a factor that favors easy words.
	if k.Stability == 0 {
		k.Stability = 1.0
	} else {
		factor := 1.3 + 0.1*(5-k.Difficulty)
		k.Stability *= factor
	}
	k.SuccessfulReviews++

	interval := k.Stability * (math.Log(in.Retention) / math.Log(baseRetention))
	interval = math.Max(1, interval)
	interval = math.Min(interval, float64(in.Config.MaxIntervalDays))

	// Difficulty eases after the interval is computed, matching the growth
	// factor to the difficulty the word had going into this review.
	k.Difficulty = math.Max(1.0, k.Difficulty-0.1)

	promoted := k.SuccessfulReviews >= in.Threshold &&
		k.State == domain.WordStateLearning &&
		k.Stability >= in.Config.KnownStability

	// A correct answer never demotes: KNOWN rows stay KNOWN.
	state := k.State
	due := now.Add(time.Duration(interval * 24 * float64(time.Hour)))
	if promoted {
		state = domain.WordStateKnown
		due = now.Add(in.Config.KnownReviewInterval)
		interval = in.Config.KnownReviewInterval.Hours() / 24
	}

	return SRSOutput{
		Params: domain.SRSUpdateParams{
			State:             state,
			Stability:         k.Stability,
			Difficulty:        k.Difficulty,
			Lapses:            k.Lapses,
			ReviewCount:       k.ReviewCount,
			SuccessfulReviews: k.SuccessfulReviews,
			Due:               due,
			LastReview:        &now,
		},
		IntervalDays: interval,
		Promoted:     promoted,
	}
}
