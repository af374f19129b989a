package handlers

import (
	"net/http"

	"github.com/Elizabethomito/ecolearn/internal/accounts"
	"github.com/Elizabethomito/ecolearn/internal/middleware"
	"github.com/Elizabethomito/ecolearn/internal/models"
)

// Register handles POST /api/auth/register
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	resp, err := s.Accounts.Register(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	resp, err := s.Accounts.Login(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.Accounts.Logout(r.Context(), middleware.SessionIDFrom(r.Context())); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.Accounts.Me(currentUser(r)))
}

// Authorize handles GET /api/auth/authorize?destination=/lessons
//
// The client asks before rendering a protected view; the answer is the
// same gate the API applies.
func (s *Server) Authorize(w http.ResponseWriter, r *http.Request) {
	dest := r.URL.Query().Get("destination")
	if dest == "" {
		respondError(w, http.StatusBadRequest, "destination is required")
		return
	}
	u := currentUser(r)
	respond(w, http.StatusOK, accounts.Authorize(&u, accounts.Destination(dest)))
}
