// Package handlers contains the HTTP handler logic for the EcoLearn API.
//
// ────────────────────────────────────────────────────────────────────
// LEARNING NOTE — package structure
// ────────────────────────────────────────────────────────────────────
// All handler files share the same "handlers" package so they can call
// each other's helpers freely without exporting them. The files are
// split by domain (auth, content, progress, submissions, admin, sync)
// purely for readability.
//
// Handlers only decode requests, call a service and encode the answer.
// The rules live in the services; the error kinds in internal/apperr
// decide the status code.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Elizabethomito/ecolearn/internal/accounts"
	"github.com/Elizabethomito/ecolearn/internal/apperr"
	"github.com/Elizabethomito/ecolearn/internal/learning"
	"github.com/Elizabethomito/ecolearn/internal/middleware"
	"github.com/Elizabethomito/ecolearn/internal/models"
	"github.com/Elizabethomito/ecolearn/internal/submissions"
	"github.com/Elizabethomito/ecolearn/internal/uploads"
)

// respond writes v as JSON with the given HTTP status code.
// Setting Content-Type before WriteHeader is important: once
// WriteHeader is called the headers are flushed and cannot be changed.
func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring the encode error: if the client disconnected mid-write
	// there is nothing useful we can do.
	_ = json.NewEncoder(w).Encode(body)
}

// respondError sends a JSON object with a single "error" key.
func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}

// decode reads and parses a JSON request body into v.
func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Syncer replays writes the local store took while the remote store was
// unreachable.
type Syncer interface {
	Run(ctx context.Context) (models.SyncReport, error)
}

// Pinger checks the remote store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the services every handler needs. Syncer and Remote are nil
// when no remote store is configured.
type Server struct {
	Accounts    *accounts.Service
	Learning    *learning.Service
	Submissions *submissions.Manager
	Uploads     *uploads.Store
	Syncer      Syncer
	Remote      Pinger
	Secret      string
	Log         *slog.Logger
}

// fail maps a service error to a status code and writes it.
//
// LEARNING NOTE — errors.As vs errors.Is
// errors.Is compares against a sentinel value (apperr.ErrNotFound);
// errors.As finds an error of a given type in the wrapped chain so we
// can read its fields (the field name of a ValidationError).
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *apperr.ValidationError
		perr *apperr.PolicyError
	)
	switch {
	case errors.As(err, &verr):
		respond(w, http.StatusBadRequest, map[string]string{"error": verr.Message, "field": verr.Field})
	case errors.As(err, &perr):
		respondError(w, http.StatusForbidden, perr.Reason)
	case errors.Is(err, apperr.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, apperr.ErrUnauthenticated.Error())
	case errors.Is(err, apperr.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrCascadeIncomplete):
		s.Log.Error("cascade incomplete", "method", r.Method, "path", r.URL.Path, "err", err)
		respondError(w, http.StatusInternalServerError, apperr.ErrCascadeIncomplete.Error())
	default:
		s.Log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// currentUser returns the user Authenticate stored. Every route that
// calls it is behind Authenticate.
func currentUser(r *http.Request) models.User {
	u, _ := middleware.UserFrom(r.Context())
	return u
}

// queryInt reads a non-negative integer query parameter, or 0.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Health handles GET /healthz
//
// The server answers 200 whenever it is up: with the remote store down,
// requests are served from the local store.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	remote := "off"
	if s.Remote != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		remote = "up"
		if err := s.Remote.Ping(ctx); err != nil {
			s.Log.Warn("remote store ping failed", "err", err)
			remote = "down"
		}
	}
	respond(w, http.StatusOK, map[string]string{"status": "ok", "remote": remote})
}
