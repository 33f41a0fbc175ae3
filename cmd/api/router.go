package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/apihub/apihub/internal/handler"
	"github.com/apihub/apihub/internal/middleware"
)

// routerDeps bundles everything the router needs.
type routerDeps struct {
	base    *handler.Handler
	health  *handler.HealthHandler
	auth    *handler.AuthHandler
	entries *handler.EntryHandler
	feed    *handler.FeedHandler
	authCfg middleware.AuthConfig
	logger  *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware. CORS runs before routing so OPTIONS preflights
	// short-circuit for every path, known or not.
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.CORS)

	// Health endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)

	// Public account endpoints
	r.Post("/api/register", deps.auth.Register)
	r.Post("/api/login", deps.auth.Login)

	// Protected endpoints
	r.With(middleware.Auth(deps.authCfg)).Get("/api/me", deps.auth.Me)

	// /api/apis is registered for all methods so the auth check runs
	// before the method branch; the handler returns 405 for unknown verbs.
	r.With(middleware.Auth(deps.authCfg)).HandleFunc("/api/apis", deps.entries.Handle)

	// Public aggregation feed
	r.Get("/api/json", deps.feed.Render)

	// 404 and 405 handlers
	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}
