package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/internal/domain"
)

// streakLookbackDays bounds the streak query. Nobody has reviewed daily
// for longer than a year in this system yet; revisit if that changes.
const streakLookbackDays = 366

// Dashboard aggregates the user's learning statistics.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*domain.Dashboard, error) {
	now := s.now()

	prof, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	tz := prof.Location()

	counts, err := s.knowledge.CountByStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	dueCount, err := s.knowledge.CountDue(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("count due: %w", err)
	}

	reviewedToday, err := s.reviews.CountToday(ctx, userID, DayStart(now, tz))
	if err != nil {
		return nil, fmt.Errorf("count reviewed today: %w", err)
	}

	today := LocalDate(now, tz)
	learnedToday := prof.WordsLearnedToday
	if prof.LastLearningDate == nil || !prof.LastLearningDate.Equal(today) {
		learnedToday = 0
	}

	streak, err := s.streak(ctx, userID, now, prof.Timezone, tz)
	if err != nil {
		return nil, fmt.Errorf("compute streak: %w", err)
	}

	return &domain.Dashboard{
		DueCount:          dueCount,
		NewCount:          counts.New,
		WordsLearnedToday: learnedToday,
		ReviewedToday:     reviewedToday,
		Streak:            streak,
		StatusCounts:      counts,
	}, nil
}

// streak counts consecutive local calendar days with at least one review,
// ending today or yesterday. A day without reviews breaks the chain, but
// today itself is not required: reviewing every evening keeps the streak
// alive through the following morning.
func (s *Service) streak(ctx context.Context, userID uuid.UUID, now time.Time, timezone string, tz *time.Location) (int, error) {
	from := now.AddDate(0, 0, -streakLookbackDays)
	days, err := s.reviews.ReviewDays(ctx, userID, from, timezone)
	if err != nil {
		return 0, err
	}
	if len(days) == 0 {
		return 0, nil
	}

	today := LocalDate(now, tz)
	expected := today
	if !days[0].Equal(today) {
		expected = today.AddDate(0, 0, -1)
	}

	streak := 0
	for _, d := range days {
		if !d.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak, nil
}

// Chart returns per-day review counts for the trailing period, oldest
// first, with zero-filled gaps. Period is 7 or 30 days.
func (s *Service) Chart(ctx context.Context, userID uuid.UUID, periodDays int) ([]domain.DayReviewCount, error) {
	if periodDays != 7 && periodDays != 30 {
		return nil, domain.NewValidationError("period", "must be 7 or 30")
	}
	now := s.now()

	prof, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	tz := prof.Location()

	from := DayStart(now, tz).AddDate(0, 0, -(periodDays - 1))
	rows, err := s.reviews.DailyCounts(ctx, userID, from, now, prof.Timezone)
	if err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}

	byDay := make(map[time.Time]int, len(rows))
	for _, r := range rows {
		byDay[r.Date] = r.Count
	}

	today := LocalDate(now, tz)
	out := make([]domain.DayReviewCount, 0, periodDays)
	for i := periodDays - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		out = append(out, domain.DayReviewCount{Date: d, Count: byDay[d]})
	}
	return out, nil
}
