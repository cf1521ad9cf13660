package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/kelime/kelime-backend/internal/domain"
)

// wordStateService defines the minimal interface needed by WordHandler.
type wordStateService interface {
	MarkKnown(ctx context.Context, userID uuid.UUID, wordText string) (*domain.UserWordKnowledge, error)
	Ignore(ctx context.Context, userID uuid.UUID, wordText string) (*domain.UserWordKnowledge, error)
}

// WordHandler serves explicit word-state endpoints.
type WordHandler struct {
	svc wordStateService
	log *slog.Logger
}

// NewWordHandler creates a WordHandler.
func NewWordHandler(svc wordStateService, logger *slog.Logger) *WordHandler {
	return &WordHandler{svc: svc, log: logger.With("handler", "words")}
}

type wordStateRequest struct {
	Word string `json:"word"`
}

// MarkKnown handles POST /api/words/known.
func (h *WordHandler) MarkKnown(w http.ResponseWriter, r *http.Request) {
	h.setState(w, r, h.svc.MarkKnown)
}

// Ignore handles POST /api/words/ignore.
func (h *WordHandler) Ignore(w http.ResponseWriter, r *http.Request) {
	h.setState(w, r, h.svc.Ignore)
}

func (h *WordHandler) setState(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, userID uuid.UUID, wordText string) (*domain.UserWordKnowledge, error),
) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	var req wordStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	k, err := apply(r.Context(), userID, req.Word)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"knowledge": toKnowledgeResponse(k)})
}
