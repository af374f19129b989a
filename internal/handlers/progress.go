package handlers

import (
	"net/http"

	"github.com/Elizabethomito/ecolearn/internal/models"
)

// CompleteLesson handles POST /api/lessons/{id}/complete  (student only)
//
// Completing a lesson twice is not an error: the response reports
// alreadyCompleted and no points move.
func (s *Server) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	out, err := s.Learning.CompleteLesson(r.Context(), currentUser(r), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, out)
}

// SubmitQuiz handles POST /api/quizzes/{id}/submit  (student only)
func (s *Server) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.QuizSubmitRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	result, err := s.Learning.SubmitQuiz(r.Context(), currentUser(r), r.PathValue("id"), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, result)
}
