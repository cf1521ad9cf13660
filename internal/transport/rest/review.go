package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/kelime/kelime-backend/internal/domain"
	"github.com/kelime/kelime-backend/internal/service/review"
)

// reviewService defines the minimal interface needed by ReviewHandler.
type reviewService interface {
	NextWord(ctx context.Context, userID uuid.UUID) (*review.NextWordResult, error)
	RecordReview(ctx context.Context, userID, wordID uuid.UUID, outcome domain.ReviewOutcome) (*review.ReviewResult, error)
}

// ReviewHandler serves the review loop endpoints.
type ReviewHandler struct {
	svc reviewService
	log *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc reviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, log: logger.With("handler", "review")}
}

type nextWordResponse struct {
	Word              wordResponse      `json:"word"`
	Knowledge         knowledgeResponse `json:"knowledge"`
	IsNew             bool              `json:"isNew"`
	NewRemainingToday int               `json:"newRemainingToday"`
}

// Next handles GET /api/review/next. Responds 204 when there is nothing
// to study right now.
func (h *ReviewHandler) Next(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	res, err := h.svc.NextWord(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if res.Word == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, nextWordResponse{
		Word:              toWordResponse(res.Word),
		Knowledge:         toKnowledgeResponse(res.Knowledge),
		IsNew:             res.IsNew,
		NewRemainingToday: res.NewRemainingToday,
	})
}

type recordReviewRequest struct {
	Outcome string `json:"outcome"`
}

type recordReviewResponse struct {
	Knowledge    knowledgeResponse `json:"knowledge"`
	IntervalDays float64           `json:"intervalDays"`
	Promoted     bool              `json:"promoted"`
}

// Record handles POST /api/review/{wordID}.
func (h *ReviewHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	wordID, err := uuid.Parse(r.PathValue("wordID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	var req recordReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.RecordReview(r.Context(), userID, wordID, domain.ReviewOutcome(req.Outcome))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, recordReviewResponse{
		Knowledge:    toKnowledgeResponse(res.Knowledge),
		IntervalDays: res.IntervalDays,
		Promoted:     res.Promoted,
	})
}
