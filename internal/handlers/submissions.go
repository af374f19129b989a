package handlers

import (
	"net/http"

	"github.com/Elizabethomito/ecolearn/internal/models"
)

// CreateSubmission handles POST /api/challenges/{id}/submissions  (student only)
func (s *Server) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubmissionRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	sub, err := s.Submissions.Create(r.Context(), currentUser(r), r.PathValue("id"), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, sub)
}

// MySubmissions handles GET /api/users/me/submissions  (student only)
func (s *Server) MySubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.Submissions.ForUser(r.Context(), currentUser(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, subs)
}

// MyChallengeStatus handles GET /api/users/me/challenges/{id}/status  (student only)
func (s *Server) MyChallengeStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.Submissions.CurrentStatus(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, status)
}

// ReviewQueue handles GET /api/teacher/submissions?status=pending
func (s *Server) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	status := models.SubmissionStatus(r.URL.Query().Get("status"))
	switch status {
	case "", models.SubmissionPending, models.SubmissionApproved, models.SubmissionRejected:
	default:
		respondError(w, http.StatusBadRequest, "status must be pending, approved or rejected")
		return
	}
	subs, err := s.Submissions.ForReviewer(r.Context(), currentUser(r), status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, subs)
}

// SchoolStudents handles GET /api/teacher/students
func (s *Server) SchoolStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.Learning.Students(r.Context(), currentUser(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, students)
}

// ApproveSubmission handles POST /api/submissions/{id}/approve
//
// A 500 carrying the cascade error means the approval is saved but the
// reward is not; posting again completes it.
func (s *Server) ApproveSubmission(w http.ResponseWriter, r *http.Request) {
	res, err := s.Submissions.Approve(r.Context(), currentUser(r), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, res)
}

// RejectSubmission handles POST /api/submissions/{id}/reject
func (s *Server) RejectSubmission(w http.ResponseWriter, r *http.Request) {
	res, err := s.Submissions.Reject(r.Context(), currentUser(r), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, res)
}
