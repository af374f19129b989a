package handlers

import (
	"net/http"

	"github.com/Elizabethomito/ecolearn/internal/models"
)

// ListUsers handles GET /api/admin/users and GET /api/super/users. The
// service narrows the list to what the caller may see.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.Accounts.Users(r.Context(), currentUser(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, users)
}

// ApproveTeacher handles POST /api/admin/users/{id}/approve
func (s *Server) ApproveTeacher(w http.ResponseWriter, r *http.Request) {
	u, err := s.Accounts.ApproveTeacher(r.Context(), currentUser(r), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, u)
}

// DisableUser handles POST /api/users/{id}/disable
func (s *Server) DisableUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.Accounts.Disable(r.Context(), currentUser(r), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, u)
}

// ActivateUser handles POST /api/users/{id}/activate
func (s *Server) ActivateUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.Accounts.Activate(r.Context(), currentUser(r), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, u)
}

// DeleteUser handles DELETE /api/users/{id}
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.Accounts.Delete(r.Context(), currentUser(r), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateAdminCode handles POST /api/super/admin-codes
func (s *Server) GenerateAdminCode(w http.ResponseWriter, r *http.Request) {
	var req models.AdminCodeRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	code, err := s.Accounts.GenerateAdminCode(r.Context(), currentUser(r), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, code)
}

// ListAdminCodes handles GET /api/super/admin-codes
func (s *Server) ListAdminCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := s.Accounts.AdminCodes(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, codes)
}

// ActivityLog handles GET /api/super/activity?limit=
func (s *Server) ActivityLog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Accounts.Activity(r.Context(), queryInt(r, "limit"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, entries)
}

// Schools handles GET /api/super/schools
func (s *Server) Schools(w http.ResponseWriter, r *http.Request) {
	schools, err := s.Accounts.Schools(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, schools)
}
