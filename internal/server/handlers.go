package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	tournamentservice "github.com/Rxriddqd/iddqd/app/modules/tournament/application"
	tournamentdb "github.com/Rxriddqd/iddqd/app/modules/tournament/infrastructure/repositories"
	"github.com/Rxriddqd/iddqd/app/shared/results"
	"github.com/Rxriddqd/iddqd/pkg/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeOperationResult maps the service result tiers onto HTTP: Failure
// payloads are domain outcomes (404 territory), errors are infrastructure
// faults (503).
func writeOperationResult(w http.ResponseWriter, logger *slog.Logger, result results.OperationResult, err error) {
	if err != nil {
		logger.Error("query failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	if result.Failure != nil {
		writeJSON(w, http.StatusNotFound, result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

func handleHealth(kv Pinger, disk DiskProber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := kv.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "cache": err.Error()})
			return
		}
		if _, err := os.Stat(disk.Root()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "disk": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type issueSessionRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role,omitempty"`
}

type issueSessionResponse struct {
	Token string `json:"token"`
}

func handleIssueSession(logger *slog.Logger, sessions session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req issueSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
			writeError(w, http.StatusBadRequest, "userId is required")
			return
		}

		role := session.Role(req.Role)
		if role == "" {
			role = session.RoleViewer
		}

		token, err := sessions.Issue(r.Context(), req.UserID, role)
		if err != nil {
			logger.Error("session issue failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "could not issue session")
			return
		}
		writeJSON(w, http.StatusOK, issueSessionResponse{Token: token})
	}
}

func handleListTournaments(logger *slog.Logger, repo tournamentdb.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := repo.ListActiveTournaments(r.Context())
		if err != nil {
			logger.Error("list tournaments failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "storage unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tournaments": tournaments})
	}
}

func handleLeaderboard(logger *slog.Logger, svc tournamentservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		result, err := svc.GetLeaderboard(r.Context(), id, 0)
		writeOperationResult(w, logger, result, err)
	}
}

func handleStats(logger *slog.Logger, svc tournamentservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		result, err := svc.CalculateStats(r.Context(), id)
		writeOperationResult(w, logger, result, err)
	}
}
