package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmorrell/makerboard/internal/activity"
	"github.com/jmorrell/makerboard/internal/auth"
	"github.com/jmorrell/makerboard/internal/metrics"
	"github.com/jmorrell/makerboard/internal/project"
	"github.com/jmorrell/makerboard/internal/ratelimit"
	"github.com/jmorrell/makerboard/internal/user"
)

// Pinger reports database reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps holds all dependencies for the API router.
type RouterDeps struct {
	Users          *user.Service
	Projects       *project.Service
	Tokens         *auth.Tokens
	Events         EventRecorder
	Views          ViewCounter
	Metrics        *metrics.Metrics
	AuthLimiter    *ratelimit.Limiter
	DBPool         Pinger
	AllowedOrigins []string
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Events == nil {
		deps.Events = noopRecorder{}
	}
	if deps.Views == nil {
		deps.Views = zeroViews{}
	}

	r := chi.NewRouter()

	// Global middleware.
	r.Use(chimw.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(secureHeaders)
	r.Use(corsMiddleware(deps.AllowedOrigins))
	r.Use(slogRequestLogger)
	r.Use(metricsMiddleware(deps.Metrics))

	// Handlers.
	authH := newAuthHandler(deps.Users, deps.Tokens, deps.Metrics)
	projectsH := newProjectsHandler(deps.Projects, deps.Users, deps.Events, deps.Views, deps.Metrics)

	// Health check.
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if deps.DBPool != nil {
			if err := deps.DBPool.Ping(req.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status":   "degraded",
					"database": "unreachable",
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status":   "ok",
			"database": "connected",
		})
	})

	// Operational endpoints.
	r.Get("/metrics", promhttp.HandlerFor(deps.Metrics.Registry(), promhttp.HandlerOpts{}).ServeHTTP)
	r.Get("/api/stats", deps.Metrics.Handler())

	// Credential endpoints, throttled per client IP.
	r.Group(func(cr chi.Router) {
		if deps.AuthLimiter != nil {
			m := deps.Metrics
			cr.Use(ratelimit.Middleware(deps.AuthLimiter, func() {
				m.IncRateLimitRejection("auth")
			}))
		}
		cr.Post("/api/auth/register", authH.Register)
		cr.Post("/api/auth/login", authH.Login)
	})

	// Public catalog routes. A bearer token is honored when present so views
	// are attributed, but never required.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.OptionalUser(deps.Tokens))

		pr.Get("/api/projects", projectsH.List)
		pr.Get("/api/projects/{id}", projectsH.Get)
		pr.Get("/api/projects/{id}/stats", projectsH.Stats)
	})

	// Authenticated routes.
	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireUser(deps.Tokens))

		ar.Get("/api/auth/me", authH.Me)
		ar.Post("/api/projects", projectsH.Create)
		ar.Patch("/api/projects/{id}/bookmark", projectsH.ToggleBookmark)
		ar.Post("/api/projects/{id}/updates", projectsH.AppendUpdate)
		ar.Post("/api/projects/{id}/roles", projectsH.AppendRole)
		ar.Post("/api/projects/{id}/collaborators", projectsH.AppendCollaborator)
	})

	return r
}

// slogRequestLogger is a simple structured logging middleware using slog.
func slogRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", ww.BytesWritten(),
			"request_id", RequestIDFromContext(r.Context()),
		)
	})
}

// noopRecorder drops events; used when no collector is wired (tests).
type noopRecorder struct{}

func (noopRecorder) Record(activity.Event) {}

// zeroViews reports zero views for every listing.
type zeroViews struct{}

func (zeroViews) ViewCount(context.Context, string) (int64, error) { return 0, nil }
