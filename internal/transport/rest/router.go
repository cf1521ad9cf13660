package rest

import (
	"log/slog"
	"net/http"

	"github.com/kelime/kelime-backend/internal/config"
	"github.com/kelime/kelime-backend/internal/transport/middleware"
)

// Handlers bundles the REST handlers mounted by NewRouter.
type Handlers struct {
	Health    *HealthHandler
	Sources   *SourceHandler
	Review    *ReviewHandler
	Words     *WordHandler
	Dashboard *DashboardHandler
	Profile   *ProfileHandler
}

// NewRouter mounts all REST routes. Health probes are served without
// middleware; everything under /api/ requires the gateway identity
// header and goes through the standard middleware chain.
func NewRouter(h Handlers, corsCfg config.CORSConfig, logger *slog.Logger, extra ...middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	api := http.NewServeMux()
	api.HandleFunc("POST /api/sources", h.Sources.Ingest)
	api.HandleFunc("GET /api/sources", h.Sources.List)
	api.HandleFunc("GET /api/sources/{id}", h.Sources.Get)
	api.HandleFunc("DELETE /api/sources/{id}", h.Sources.Delete)

	api.HandleFunc("GET /api/review/next", h.Review.Next)
	api.HandleFunc("POST /api/review/{wordID}", h.Review.Record)

	api.HandleFunc("POST /api/words/known", h.Words.MarkKnown)
	api.HandleFunc("POST /api/words/ignore", h.Words.Ignore)

	api.HandleFunc("GET /api/dashboard", h.Dashboard.Get)
	api.HandleFunc("GET /api/dashboard/chart", h.Dashboard.Chart)

	api.HandleFunc("GET /api/profile", h.Profile.Get)
	api.HandleFunc("PATCH /api/profile", h.Profile.Update)

	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(corsCfg),
	}
	mws = append(mws, extra...)
	mws = append(mws, middleware.Identity())
	mux.Handle("/api/", middleware.Chain(mws...)(api))

	return mux
}
