package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kelime/kelime-backend/internal/domain"
	"github.com/kelime/kelime-backend/internal/service/profile"
)

type profileServiceMock struct {
	GetFunc    func(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
	UpdateFunc func(ctx context.Context, userID uuid.UUID, in profile.UpdateInput) (*profile.UpdateResult, error)
}

func (m *profileServiceMock) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	return m.GetFunc(ctx, userID)
}

func (m *profileServiceMock) Update(ctx context.Context, userID uuid.UUID, in profile.UpdateInput) (*profile.UpdateResult, error) {
	return m.UpdateFunc(ctx, userID, in)
}

func TestProfileHandler_Get_FreeUserEffectiveSettings(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	prof := domain.DefaultProfile(userID)
	prof.DailyNewWordTarget = 50
	prof.FilterStopWords = false

	svc := &profileServiceMock{
		GetFunc: func(context.Context, uuid.UUID) (*domain.UserProfile, error) {
			return &prof, nil
		},
	}
	h := NewProfileHandler(svc, testLogger())

	req := authedRequest(http.MethodGet, "/api/profile", "", userID)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp profileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DailyNewWordTarget != 50 {
		t.Errorf("expected stored target 50, got %d", resp.DailyNewWordTarget)
	}
	if resp.Effective.DailyNewWordTarget != domain.DefaultDailyNewWordTarget {
		t.Errorf("expected effective target %d for free user, got %d",
			domain.DefaultDailyNewWordTarget, resp.Effective.DailyNewWordTarget)
	}
	if !resp.Effective.FilterStopWords {
		t.Error("expected effective stop-word filtering for free user")
	}
}

func TestProfileHandler_Get_ProUserEffectiveSettings(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	prof := domain.DefaultProfile(userID)
	prof.IsPro = true
	prof.DailyNewWordTarget = 50
	prof.FilterStopWords = false

	svc := &profileServiceMock{
		GetFunc: func(context.Context, uuid.UUID) (*domain.UserProfile, error) {
			return &prof, nil
		},
	}
	h := NewProfileHandler(svc, testLogger())

	req := authedRequest(http.MethodGet, "/api/profile", "", userID)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	var resp profileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Effective.DailyNewWordTarget != 50 {
		t.Errorf("expected effective target 50 for pro user, got %d", resp.Effective.DailyNewWordTarget)
	}
	if resp.Effective.FilterStopWords {
		t.Error("expected stop-word filtering off for pro user")
	}
}

func TestProfileHandler_Update(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var gotInput profile.UpdateInput
	svc := &profileServiceMock{
		UpdateFunc: func(_ context.Context, _ uuid.UUID, in profile.UpdateInput) (*profile.UpdateResult, error) {
			gotInput = in
			prof := domain.DefaultProfile(userID)
			prof.RetentionRate = 0.85
			return &profile.UpdateResult{
				Profile: &prof,
				Changes: map[string]any{"retention_rate": 0.85},
				Errors:  map[string]string{"daily_new_word_target": "requires Pro subscription"},
			}, nil
		},
	}
	h := NewProfileHandler(svc, testLogger())

	body := `{"retention_rate":0.85,"daily_new_word_target":40}`
	req := authedRequest(http.MethodPatch, "/api/profile", body, userID)
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if gotInput.RetentionRate == nil || *gotInput.RetentionRate != 0.85 {
		t.Errorf("expected retention 0.85 in input, got %v", gotInput.RetentionRate)
	}
	if gotInput.DailyNewWordTarget == nil || *gotInput.DailyNewWordTarget != 40 {
		t.Errorf("expected target 40 in input, got %v", gotInput.DailyNewWordTarget)
	}
	if gotInput.Timezone != nil {
		t.Error("expected nil timezone for absent field")
	}

	var resp updateProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Changes["retention_rate"] != 0.85 {
		t.Errorf("expected retention change, got %+v", resp.Changes)
	}
	if resp.Errors["daily_new_word_target"] == "" {
		t.Errorf("expected gating error, got %+v", resp.Errors)
	}
	if resp.Profile.RetentionRate != 0.85 {
		t.Errorf("expected profile retention 0.85, got %v", resp.Profile.RetentionRate)
	}
}

func TestProfileHandler_Update_InvalidBody(t *testing.T) {
	t.Parallel()

	h := NewProfileHandler(&profileServiceMock{}, testLogger())

	req := authedRequest(http.MethodPatch, "/api/profile", "{bad", uuid.New())
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestProfileHandler_Get_ExpiredPro(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	expired := time.Now().Add(-24 * time.Hour)
	prof := domain.DefaultProfile(userID)
	prof.IsPro = true
	prof.ProExpiresAt = &expired
	prof.DailyNewWordTarget = 50

	svc := &profileServiceMock{
		GetFunc: func(context.Context, uuid.UUID) (*domain.UserProfile, error) {
			return &prof, nil
		},
	}
	h := NewProfileHandler(svc, testLogger())

	req := authedRequest(http.MethodGet, "/api/profile", "", userID)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	var resp profileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Effective.DailyNewWordTarget != domain.DefaultDailyNewWordTarget {
		t.Errorf("expected default effective target for expired pro, got %d", resp.Effective.DailyNewWordTarget)
	}
}
