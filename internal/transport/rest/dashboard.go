package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/kelime/kelime-backend/internal/domain"
)

// dashboardService defines the minimal interface needed by DashboardHandler.
type dashboardService interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*domain.Dashboard, error)
	Chart(ctx context.Context, userID uuid.UUID, periodDays int) ([]domain.DayReviewCount, error)
}

// DashboardHandler serves aggregated learning statistics.
type DashboardHandler struct {
	svc dashboardService
	log *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(svc dashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: logger.With("handler", "dashboard")}
}

type dashboardResponse struct {
	DueCount          int                  `json:"dueCount"`
	NewCount          int                  `json:"newCount"`
	WordsLearnedToday int                  `json:"wordsLearnedToday"`
	ReviewedToday     int                  `json:"reviewedToday"`
	Streak            int                  `json:"streak"`
	StatusCounts      statusCountsResponse `json:"statusCounts"`
}

type statusCountsResponse struct {
	New      int `json:"new"`
	Learning int `json:"learning"`
	Known    int `json:"known"`
	Ignored  int `json:"ignored"`
	Total    int `json:"total"`
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	d, err := h.svc.Dashboard(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		DueCount:          d.DueCount,
		NewCount:          d.NewCount,
		WordsLearnedToday: d.WordsLearnedToday,
		ReviewedToday:     d.ReviewedToday,
		Streak:            d.Streak,
		StatusCounts: statusCountsResponse{
			New:      d.StatusCounts.New,
			Learning: d.StatusCounts.Learning,
			Known:    d.StatusCounts.Known,
			Ignored:  d.StatusCounts.Ignored,
			Total:    d.StatusCounts.Total,
		},
	})
}

type chartPointResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Chart handles GET /api/dashboard/chart?period=7|30.
func (h *DashboardHandler) Chart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	period := 7
	if raw := r.URL.Query().Get("period"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "period must be an integer")
			return
		}
		period = p
	}

	points, err := h.svc.Chart(r.Context(), userID, period)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	items := make([]chartPointResponse, 0, len(points))
	for _, p := range points {
		items = append(items, chartPointResponse{
			Date:  p.Date.Format(time.DateOnly),
			Count: p.Count,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"points": items})
}
