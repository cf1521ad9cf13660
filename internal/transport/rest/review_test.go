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
	"github.com/kelime/kelime-backend/internal/service/review"
)

type reviewServiceMock struct {
	NextWordFunc     func(ctx context.Context, userID uuid.UUID) (*review.NextWordResult, error)
	RecordReviewFunc func(ctx context.Context, userID, wordID uuid.UUID, outcome domain.ReviewOutcome) (*review.ReviewResult, error)
}

func (m *reviewServiceMock) NextWord(ctx context.Context, userID uuid.UUID) (*review.NextWordResult, error) {
	return m.NextWordFunc(ctx, userID)
}

func (m *reviewServiceMock) RecordReview(ctx context.Context, userID, wordID uuid.UUID, outcome domain.ReviewOutcome) (*review.ReviewResult, error) {
	return m.RecordReviewFunc(ctx, userID, wordID, outcome)
}

func testKnowledge(userID, wordID uuid.UUID) *domain.UserWordKnowledge {
	return &domain.UserWordKnowledge{
		ID:          uuid.New(),
		UserID:      userID,
		WordID:      wordID,
		State:       domain.WordStateLearning,
		Stability:   2.6,
		Difficulty:  5,
		ReviewCount: 3,
		Due:         time.Now().Add(48 * time.Hour),
	}
}

func TestReviewHandler_Next(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	word := &domain.Word{ID: uuid.New(), Text: "serendipity"}
	svc := &reviewServiceMock{
		NextWordFunc: func(_ context.Context, gotUser uuid.UUID) (*review.NextWordResult, error) {
			if gotUser != userID {
				t.Errorf("expected userID %s, got %s", userID, gotUser)
			}
			return &review.NextWordResult{
				Word:              word,
				Knowledge:         testKnowledge(userID, word.ID),
				IsNew:             true,
				NewRemainingToday: 4,
			}, nil
		},
	}
	h := NewReviewHandler(svc, testLogger())

	req := authedRequest(http.MethodGet, "/api/review/next", "", userID)
	rec := httptest.NewRecorder()

	h.Next(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp nextWordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Word.Text != "serendipity" {
		t.Errorf("expected word serendipity, got %q", resp.Word.Text)
	}
	if !resp.IsNew {
		t.Error("expected isNew true")
	}
	if resp.NewRemainingToday != 4 {
		t.Errorf("expected 4 remaining, got %d", resp.NewRemainingToday)
	}
}

func TestReviewHandler_Next_NothingToStudy(t *testing.T) {
	t.Parallel()

	svc := &reviewServiceMock{
		NextWordFunc: func(context.Context, uuid.UUID) (*review.NextWordResult, error) {
			return &review.NextWordResult{QuotaReached: true}, nil
		},
	}
	h := NewReviewHandler(svc, testLogger())

	req := authedRequest(http.MethodGet, "/api/review/next", "", uuid.New())
	rec := httptest.NewRecorder()

	h.Next(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
}

func TestReviewHandler_Record(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	wordID := uuid.New()
	svc := &reviewServiceMock{
		RecordReviewFunc: func(_ context.Context, _ uuid.UUID, gotWord uuid.UUID, outcome domain.ReviewOutcome) (*review.ReviewResult, error) {
			if gotWord != wordID {
				t.Errorf("expected wordID %s, got %s", wordID, gotWord)
			}
			if outcome != domain.ReviewOutcomeCorrect {
				t.Errorf("expected CORRECT, got %s", outcome)
			}
			return &review.ReviewResult{
				Knowledge:    testKnowledge(userID, wordID),
				IntervalDays: 2.6,
				Promoted:     false,
			}, nil
		},
	}
	h := NewReviewHandler(svc, testLogger())

	req := authedRequest(http.MethodPost, "/api/review/"+wordID.String(), `{"outcome":"CORRECT"}`, userID)
	req.SetPathValue("wordID", wordID.String())
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp recordReviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.IntervalDays != 2.6 {
		t.Errorf("expected interval 2.6, got %v", resp.IntervalDays)
	}
	if resp.Knowledge.State != "LEARNING" {
		t.Errorf("expected state LEARNING, got %s", resp.Knowledge.State)
	}
}

func TestReviewHandler_Record_InvalidOutcome(t *testing.T) {
	t.Parallel()

	wordID := uuid.New()
	svc := &reviewServiceMock{
		RecordReviewFunc: func(context.Context, uuid.UUID, uuid.UUID, domain.ReviewOutcome) (*review.ReviewResult, error) {
			return nil, domain.NewValidationError("outcome", "must be CORRECT or INCORRECT")
		},
	}
	h := NewReviewHandler(svc, testLogger())

	req := authedRequest(http.MethodPost, "/api/review/"+wordID.String(), `{"outcome":"MAYBE"}`, uuid.New())
	req.SetPathValue("wordID", wordID.String())
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestReviewHandler_Record_InvalidWordID(t *testing.T) {
	t.Parallel()

	h := NewReviewHandler(&reviewServiceMock{}, testLogger())

	req := authedRequest(http.MethodPost, "/api/review/nope", `{"outcome":"CORRECT"}`, uuid.New())
	req.SetPathValue("wordID", "nope")
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestReviewHandler_Record_NotFound(t *testing.T) {
	t.Parallel()

	wordID := uuid.New()
	svc := &reviewServiceMock{
		RecordReviewFunc: func(context.Context, uuid.UUID, uuid.UUID, domain.ReviewOutcome) (*review.ReviewResult, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewReviewHandler(svc, testLogger())

	req := authedRequest(http.MethodPost, "/api/review/"+wordID.String(), `{"outcome":"CORRECT"}`, uuid.New())
	req.SetPathValue("wordID", wordID.String())
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
