package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kelime/kelime-backend/internal/domain"
	"github.com/kelime/kelime-backend/internal/service/profile"
)

// profileService defines the minimal interface needed by ProfileHandler.
type profileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
	Update(ctx context.Context, userID uuid.UUID, in profile.UpdateInput) (*profile.UpdateResult, error)
}

// ProfileHandler serves per-user settings endpoints.
type ProfileHandler struct {
	svc profileService
	log *slog.Logger
	now func() time.Time
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc profileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, log: logger.With("handler", "profile"), now: time.Now}
}

type profileResponse struct {
	DailyNewWordTarget int        `json:"dailyNewWordTarget"`
	FilterStopWords    bool       `json:"filterStopWords"`
	RetentionRate      float64    `json:"retentionRate"`
	KnownThreshold     int        `json:"knownThreshold"`
	Timezone           string     `json:"timezone"`
	IsPro              bool       `json:"isPro"`
	ProExpiresAt       *time.Time `json:"proExpiresAt,omitempty"`

	// Effective reports the values actually applied after free/Pro
	// gating, which may differ from the stored preferences.
	Effective effectiveResponse `json:"effective"`
}

type effectiveResponse struct {
	DailyNewWordTarget int  `json:"dailyNewWordTarget"`
	FilterStopWords    bool `json:"filterStopWords"`
}

func (h *ProfileHandler) toProfileResponse(p *domain.UserProfile) profileResponse {
	eff := p.Effective(h.now())
	return profileResponse{
		DailyNewWordTarget: p.DailyNewWordTarget,
		FilterStopWords:    p.FilterStopWords,
		RetentionRate:      p.RetentionRate,
		KnownThreshold:     p.KnownThreshold,
		Timezone:           p.Timezone,
		IsPro:              p.IsPro,
		ProExpiresAt:       p.ProExpiresAt,
		Effective: effectiveResponse{
			DailyNewWordTarget: eff.DailyNewWordTarget,
			FilterStopWords:    eff.FilterStopWords,
		},
	}
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toProfileResponse(p))
}

type updateProfileRequest struct {
	DailyNewWordTarget *int     `json:"daily_new_word_target"`
	FilterStopWords    *bool    `json:"filter_stop_words"`
	RetentionRate      *float64 `json:"retention_rate"`
	KnownThreshold     *int     `json:"known_threshold"`
	Timezone           *string  `json:"timezone"`
}

type updateProfileResponse struct {
	Profile profileResponse   `json:"profile"`
	Changes map[string]any    `json:"changes"`
	Errors  map[string]string `json:"errors"`
}

// Update handles PATCH /api/profile. Valid fields are applied even when
// other fields are rejected; the response reports both sets.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.Update(r.Context(), userID, profile.UpdateInput{
		DailyNewWordTarget: req.DailyNewWordTarget,
		FilterStopWords:    req.FilterStopWords,
		RetentionRate:      req.RetentionRate,
		KnownThreshold:     req.KnownThreshold,
		Timezone:           req.Timezone,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, updateProfileResponse{
		Profile: h.toProfileResponse(res.Profile),
		Changes: res.Changes,
		Errors:  res.Errors,
	})
}
