// Package server exposes the read-only HTTP API: health, metrics, session
// issuance, and tournament queries. All mutations travel over the event bus;
// HTTP is a query surface only.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	tournamentservice "github.com/Rxriddqd/iddqd/app/modules/tournament/application"
	tournamentdb "github.com/Rxriddqd/iddqd/app/modules/tournament/infrastructure/repositories"
	"github.com/Rxriddqd/iddqd/app/observability"
	"github.com/Rxriddqd/iddqd/pkg/session"
)

// Pinger reports whether the cache tier is reachable. Satisfied by the KV
// client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DiskProber reports whether the durable tier's root is usable. Satisfied
// by the disk store.
type DiskProber interface {
	Root() string
}

// Server is the HTTP query surface.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// Deps carries everything the HTTP routes need.
type Deps struct {
	Logger      *slog.Logger
	Obs         *observability.Observability
	KV          Pinger
	Disk        DiskProber
	Tournaments tournamentservice.Service
	Repo        tournamentdb.Repository
	Sessions    session.Service
}

// New builds the chi router and wraps it in an http.Server listening on addr.
func New(addr string, deps Deps) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", handleHealth(deps.KV, deps.Disk))
	r.Method(http.MethodGet, "/metrics", deps.Obs.Registry.MetricsHandler())

	r.Post("/api/session", handleIssueSession(deps.Logger, deps.Sessions))

	r.Group(func(r chi.Router) {
		r.Use(sessionAuth(deps.Sessions))
		r.Get("/api/tournaments", handleListTournaments(deps.Logger, deps.Repo))
		r.Get("/api/tournaments/{id}/leaderboard", handleLeaderboard(deps.Logger, deps.Tournaments))
		r.Get("/api/tournaments/{id}/stats", handleStats(deps.Logger, deps.Tournaments))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: deps.Logger,
	}
}

// Start runs the listener until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
