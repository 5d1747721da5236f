package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/tubegrab/internal/api/handler"
	mw "github.com/iconidentify/tubegrab/internal/api/middleware"
	"github.com/iconidentify/tubegrab/internal/config"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	mediaHandler *handler.MediaHandler,
	healthHandler *handler.HealthHandler,
	uiHandler *handler.UIHandler,
	requestTimeout time.Duration,
	rateLimit config.RateLimitConfig,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath) // Normalize paths (e.g., //ready -> /ready)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(mw.CORS)

	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)

	r.Get("/", uiHandler.Index)

	// Extraction endpoints spawn yt-dlp and are rate limited.
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(rateLimit.RequestsPerSecond, rateLimit.Burst))

		r.Post("/get-info", mediaHandler.GetInfo)
		r.Post("/download", mediaHandler.Download)
	})

	return r
}
