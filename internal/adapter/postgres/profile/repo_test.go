package profile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/internal/adapter/postgres/profile"
	"github.com/kelime/kelime-backend/internal/adapter/postgres/testhelper"
	"github.com/kelime/kelime-backend/internal/domain"
)

func TestRepo_GetOrCreate_CreatesDefaults(t *testing.T) {
	t.Parallel()
	repo := profile.New(testhelper.SetupTestDB(t))
	ctx := context.Background()

	userID := uuid.New()

	got, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("GetOrCreate: unexpected error: %v", err)
	}

	if got.UserID != userID {
		t.Errorf("UserID = %s, want %s", got.UserID, userID)
	}
	if got.DailyNewWordTarget != domain.DefaultDailyNewWordTarget {
		t.Errorf("DailyNewWordTarget = %d, want %d", got.DailyNewWordTarget, domain.DefaultDailyNewWordTarget)
	}
	if !got.FilterStopWords {
		t.Error("FilterStopWords = false, want true by default")
	}
	if got.RetentionRate != domain.DefaultRetentionRate {
		t.Errorf("RetentionRate = %v, want %v", got.RetentionRate, domain.DefaultRetentionRate)
	}
	if got.KnownThreshold != domain.DefaultKnownThreshold {
		t.Errorf("KnownThreshold = %d, want %d", got.KnownThreshold, domain.DefaultKnownThreshold)
	}
	if got.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", got.Timezone)
	}
	if got.IsPro {
		t.Error("IsPro = true, want false by default")
	}
}

func TestRepo_GetOrCreate_Idempotent(t *testing.T) {
	t.Parallel()
	repo := profile.New(testhelper.SetupTestDB(t))
	ctx := context.Background()

	userID := uuid.New()

	first, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}

	target := 50
	if _, err := repo.Update(ctx, userID, domain.ProfileUpdate{DailyNewWordTarget: &target}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	second, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if second.DailyNewWordTarget != 50 {
		t.Errorf("DailyNewWordTarget = %d, want 50 (existing row returned, not recreated)", second.DailyNewWordTarget)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
}

func TestRepo_Update_PartialFields(t *testing.T) {
	t.Parallel()
	repo := profile.New(testhelper.SetupTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	if _, err := repo.GetOrCreate(ctx, userID); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	rate := 0.85
	tz := "Europe/Istanbul"
	got, err := repo.Update(ctx, userID, domain.ProfileUpdate{
		RetentionRate: &rate,
		Timezone:      &tz,
	})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if got.RetentionRate != 0.85 {
		t.Errorf("RetentionRate = %v, want 0.85", got.RetentionRate)
	}
	if got.Timezone != "Europe/Istanbul" {
		t.Errorf("Timezone = %q, want Europe/Istanbul", got.Timezone)
	}
	// Untouched fields keep their values.
	if got.DailyNewWordTarget != domain.DefaultDailyNewWordTarget {
		t.Errorf("DailyNewWordTarget = %d, want untouched default", got.DailyNewWordTarget)
	}
}

func TestRepo_Update_ProFields(t *testing.T) {
	t.Parallel()
	repo := profile.New(testhelper.SetupTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	if _, err := repo.GetOrCreate(ctx, userID); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	isPro := true
	expires := time.Now().UTC().AddDate(1, 0, 0).Truncate(time.Microsecond)
	expiresPtr := &expires
	got, err := repo.Update(ctx, userID, domain.ProfileUpdate{
		IsPro:        &isPro,
		ProExpiresAt: &expiresPtr,
	})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if !got.IsPro {
		t.Error("IsPro = false, want true")
	}
	if got.ProExpiresAt == nil || !got.ProExpiresAt.Equal(expires) {
		t.Errorf("ProExpiresAt = %v, want %v", got.ProExpiresAt, expires)
	}

	// Clearing the expiry stores NULL.
	var nilTime *time.Time
	got, err = repo.Update(ctx, userID, domain.ProfileUpdate{ProExpiresAt: &nilTime})
	if err != nil {
		t.Fatalf("Update(clear expiry): %v", err)
	}
	if got.ProExpiresAt != nil {
		t.Errorf("ProExpiresAt = %v, want nil", got.ProExpiresAt)
	}
}

func TestRepo_Update_NotFound(t *testing.T) {
	t.Parallel()
	repo := profile.New(testhelper.SetupTestDB(t))

	target := 30
	_, err := repo.Update(context.Background(), uuid.New(), domain.ProfileUpdate{DailyNewWordTarget: &target})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update(missing) = %v, want ErrNotFound", err)
	}
}

func TestRepo_SetLearnedToday(t *testing.T) {
	t.Parallel()
	repo := profile.New(testhelper.SetupTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	if _, err := repo.GetOrCreate(ctx, userID); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if err := repo.SetLearnedToday(ctx, userID, 7, day); err != nil {
		t.Fatalf("SetLearnedToday: unexpected error: %v", err)
	}

	got, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if got.WordsLearnedToday != 7 {
		t.Errorf("WordsLearnedToday = %d, want 7", got.WordsLearnedToday)
	}
	if got.LastLearningDate == nil || !got.LastLearningDate.Equal(day) {
		t.Errorf("LastLearningDate = %v, want %v", got.LastLearningDate, day)
	}
}

func TestRepo_SetLearnedToday_NotFound(t *testing.T) {
	t.Parallel()
	repo := profile.New(testhelper.SetupTestDB(t))

	err := repo.SetLearnedToday(context.Background(), uuid.New(), 1, time.Now().UTC())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("SetLearnedToday(missing) = %v, want ErrNotFound", err)
	}
}
