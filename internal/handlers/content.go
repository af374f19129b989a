package handlers

import (
	"net/http"

	"github.com/Elizabethomito/ecolearn/internal/models"
)

// ---- lessons ----

// ListLessons handles GET /api/lessons
func (s *Server) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := s.Learning.Lessons(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, lessons)
}

// GetLesson handles GET /api/lessons/{id}
func (s *Server) GetLesson(w http.ResponseWriter, r *http.Request) {
	l, err := s.Learning.Lesson(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, l)
}

// CreateLesson handles POST /api/lessons  (teacher only)
func (s *Server) CreateLesson(w http.ResponseWriter, r *http.Request) {
	s.saveLesson(w, r, "", http.StatusCreated)
}

// UpdateLesson handles PUT /api/lessons/{id}  (teacher only)
func (s *Server) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	s.saveLesson(w, r, r.PathValue("id"), http.StatusOK)
}

func (s *Server) saveLesson(w http.ResponseWriter, r *http.Request, id string, status int) {
	var l models.Lesson
	if err := decode(r, &l); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	saved, err := s.Learning.SaveLesson(r.Context(), currentUser(r), id, l)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, status, saved)
}

// DeleteLesson handles DELETE /api/lessons/{id}  (teacher only)
func (s *Server) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	if err := s.Learning.DeleteLesson(r.Context(), currentUser(r), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- quizzes ----

// ListQuizzes handles GET /api/quizzes?lesson_id=
func (s *Server) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := s.Learning.Quizzes(r.Context(), r.URL.Query().Get("lesson_id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, quizzes)
}

// GetQuiz handles GET /api/quizzes/{id}
func (s *Server) GetQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := s.Learning.Quiz(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, q)
}

// CreateQuiz handles POST /api/quizzes  (teacher only)
func (s *Server) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	s.saveQuiz(w, r, "", http.StatusCreated)
}

// UpdateQuiz handles PUT /api/quizzes/{id}  (teacher only)
func (s *Server) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	s.saveQuiz(w, r, r.PathValue("id"), http.StatusOK)
}

func (s *Server) saveQuiz(w http.ResponseWriter, r *http.Request, id string, status int) {
	var q models.Quiz
	if err := decode(r, &q); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	saved, err := s.Learning.SaveQuiz(r.Context(), currentUser(r), id, q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, status, saved)
}

// DeleteQuiz handles DELETE /api/quizzes/{id}  (teacher only)
func (s *Server) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := s.Learning.DeleteQuiz(r.Context(), currentUser(r), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- challenges ----

// ListChallenges handles GET /api/challenges
func (s *Server) ListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := s.Learning.Challenges(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, challenges)
}

// GetChallenge handles GET /api/challenges/{id}
func (s *Server) GetChallenge(w http.ResponseWriter, r *http.Request) {
	c, err := s.Learning.Challenge(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, c)
}

// CreateChallenge handles POST /api/challenges  (teacher only)
func (s *Server) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	s.saveChallenge(w, r, "", http.StatusCreated)
}

// UpdateChallenge handles PUT /api/challenges/{id}  (teacher only)
func (s *Server) UpdateChallenge(w http.ResponseWriter, r *http.Request) {
	s.saveChallenge(w, r, r.PathValue("id"), http.StatusOK)
}

func (s *Server) saveChallenge(w http.ResponseWriter, r *http.Request, id string, status int) {
	var c models.Challenge
	if err := decode(r, &c); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	saved, err := s.Learning.SaveChallenge(r.Context(), currentUser(r), id, c)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, status, saved)
}

// DeleteChallenge handles DELETE /api/challenges/{id}  (teacher only)
func (s *Server) DeleteChallenge(w http.ResponseWriter, r *http.Request) {
	if err := s.Learning.DeleteChallenge(r.Context(), currentUser(r), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- catalog and rankings ----

// ListBadges handles GET /api/badges
func (s *Server) ListBadges(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.Learning.Badges())
}

// ListLevels handles GET /api/levels
func (s *Server) ListLevels(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.Learning.Levels())
}

// Leaderboard handles GET /api/leaderboard?school_id=
func (s *Server) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Learning.Leaderboard(r.Context(), r.URL.Query().Get("school_id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, entries)
}

// SchoolStats handles GET /api/schools/stats
func (s *Server) SchoolStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Learning.SchoolStats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, stats)
}
