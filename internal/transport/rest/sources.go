package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/kelime/kelime-backend/internal/domain"
	"github.com/kelime/kelime-backend/internal/service/ingest"
)

// ingestService defines the minimal interface needed by SourceHandler.
type ingestService interface {
	IngestSource(ctx context.Context, userID uuid.UUID, in ingest.IngestInput) (*domain.Source, error)
	ListSources(ctx context.Context, userID uuid.UUID, filter domain.SourceFilter) ([]*domain.Source, error)
	GetSource(ctx context.Context, userID, id uuid.UUID) (*domain.Source, error)
	DeleteSource(ctx context.Context, userID, id uuid.UUID) error
}

// SourceHandler serves source ingestion and listing endpoints.
type SourceHandler struct {
	svc ingestService
	log *slog.Logger
}

// NewSourceHandler creates a SourceHandler.
func NewSourceHandler(svc ingestService, logger *slog.Logger) *SourceHandler {
	return &SourceHandler{svc: svc, log: logger.With("handler", "sources")}
}

type ingestRequest struct {
	Title string `json:"title"`
	Type  string `json:"source_type"`
	Text  string `json:"text"`
}

// Ingest handles POST /api/sources.
func (h *SourceHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	src, err := h.svc.IngestSource(r.Context(), userID, ingest.IngestInput{
		Title:   req.Title,
		Type:    domain.SourceType(req.Type),
		Content: req.Text,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSourceResponse(src, false))
}

// List handles GET /api/sources.
func (h *SourceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	filter, err := parseSourceFilter(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	sources, err := h.svc.ListSources(r.Context(), userID, filter)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	items := make([]sourceResponse, 0, len(sources))
	for _, src := range sources {
		items = append(items, toSourceResponse(src, false))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sources": items})
}

// Get handles GET /api/sources/{id}.
func (h *SourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid source id")
		return
	}

	src, err := h.svc.GetSource(r.Context(), userID, id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSourceResponse(src, true))
}

// Delete handles DELETE /api/sources/{id}.
func (h *SourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid source id")
		return
	}

	if err := h.svc.DeleteSource(r.Context(), userID, id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseSourceFilter(r *http.Request) (domain.SourceFilter, error) {
	var filter domain.SourceFilter
	q := r.URL.Query()

	if raw := q.Get("type"); raw != "" {
		t := domain.SourceType(raw)
		if !t.IsValid() {
			return filter, domain.NewValidationError("type", "unknown source type")
		}
		filter.Type = &t
	}
	if raw := q.Get("processed"); raw != "" {
		processed, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, domain.NewValidationError("processed", "must be true or false")
		}
		filter.Processed = &processed
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, domain.NewValidationError("limit", "must be a non-negative integer")
		}
		filter.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return filter, domain.NewValidationError("offset", "must be a non-negative integer")
		}
		filter.Offset = offset
	}

	return filter, nil
}
