package handlers

import (
	"net/http"

	"github.com/Elizabethomito/ecolearn/internal/middleware"
	"github.com/Elizabethomito/ecolearn/internal/models"
	"github.com/Elizabethomito/ecolearn/internal/uploads"
)

// Routes registers every endpoint and returns the full handler chain.
//
// LEARNING NOTE — Go 1.22 ServeMux
// Method prefixes ("GET /path") and path wildcards ("{id}") are
// supported natively, so no third-party router is needed. Chaining
// middleware reads inside out: auth(active(students(h))) authenticates,
// then applies the pending-approval gate, then checks the role.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	auth := middleware.Authenticate(s.Secret, s.Accounts)
	active := middleware.RequireActive
	students := middleware.RequireRole(models.RoleStudent)
	teachers := middleware.RequireRole(models.RoleTeacher)
	reviewers := middleware.RequireRole(models.RoleTeacher, models.RoleAdmin, models.RoleSuperAdmin)
	admins := middleware.RequireRole(models.RoleAdmin)
	moderators := middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)
	super := middleware.RequireRole(models.RoleSuperAdmin)

	// gated wraps h for a logged-in, non-pending user with one of the
	// roles checked by role.
	gated := func(role func(http.Handler) http.Handler, h http.HandlerFunc) http.Handler {
		return auth(active(role(h)))
	}

	// Public routes, no token required.
	mux.HandleFunc("GET /healthz", s.Health)
	mux.HandleFunc("POST /api/auth/register", s.Register)
	mux.HandleFunc("POST /api/auth/login", s.Login)
	mux.HandleFunc("GET /api/lessons", s.ListLessons)
	mux.HandleFunc("GET /api/lessons/{id}", s.GetLesson)
	mux.HandleFunc("GET /api/quizzes", s.ListQuizzes)
	mux.HandleFunc("GET /api/quizzes/{id}", s.GetQuiz)
	mux.HandleFunc("GET /api/challenges", s.ListChallenges)
	mux.HandleFunc("GET /api/challenges/{id}", s.GetChallenge)
	mux.HandleFunc("GET /api/badges", s.ListBadges)
	mux.HandleFunc("GET /api/levels", s.ListLevels)
	mux.HandleFunc("GET /api/leaderboard", s.Leaderboard)
	mux.HandleFunc("GET /api/schools/stats", s.SchoolStats)

	// Authenticated, any status, so a pending teacher can see where
	// they stand.
	mux.Handle("GET /api/auth/me", auth(http.HandlerFunc(s.Me)))
	mux.Handle("POST /api/auth/logout", auth(http.HandlerFunc(s.Logout)))
	mux.Handle("GET /api/auth/authorize", auth(http.HandlerFunc(s.Authorize)))

	// Student routes.
	mux.Handle("POST /api/lessons/{id}/complete", gated(students, s.CompleteLesson))
	mux.Handle("POST /api/quizzes/{id}/submit", gated(students, s.SubmitQuiz))
	mux.Handle("POST /api/challenges/{id}/submissions", gated(students, s.CreateSubmission))
	mux.Handle("GET /api/users/me/submissions", gated(students, s.MySubmissions))
	mux.Handle("GET /api/users/me/challenges/{id}/status", gated(students, s.MyChallengeStatus))
	mux.Handle("POST /api/uploads/proof", gated(students, s.UploadProof))

	// Teacher content management.
	mux.Handle("POST /api/lessons", gated(teachers, s.CreateLesson))
	mux.Handle("PUT /api/lessons/{id}", gated(teachers, s.UpdateLesson))
	mux.Handle("DELETE /api/lessons/{id}", gated(teachers, s.DeleteLesson))
	mux.Handle("POST /api/quizzes", gated(teachers, s.CreateQuiz))
	mux.Handle("PUT /api/quizzes/{id}", gated(teachers, s.UpdateQuiz))
	mux.Handle("DELETE /api/quizzes/{id}", gated(teachers, s.DeleteQuiz))
	mux.Handle("POST /api/challenges", gated(teachers, s.CreateChallenge))
	mux.Handle("PUT /api/challenges/{id}", gated(teachers, s.UpdateChallenge))
	mux.Handle("DELETE /api/challenges/{id}", gated(teachers, s.DeleteChallenge))

	// Review.
	mux.Handle("GET /api/teacher/submissions", gated(reviewers, s.ReviewQueue))
	mux.Handle("GET /api/teacher/students", gated(reviewers, s.SchoolStudents))
	mux.Handle("POST /api/submissions/{id}/approve", gated(reviewers, s.ApproveSubmission))
	mux.Handle("POST /api/submissions/{id}/reject", gated(reviewers, s.RejectSubmission))

	// School admin.
	mux.Handle("GET /api/admin/users", gated(admins, s.ListUsers))
	mux.Handle("POST /api/admin/users/{id}/approve", gated(admins, s.ApproveTeacher))

	// Account moderation.
	mux.Handle("POST /api/users/{id}/disable", gated(moderators, s.DisableUser))
	mux.Handle("POST /api/users/{id}/activate", gated(moderators, s.ActivateUser))
	mux.Handle("DELETE /api/users/{id}", gated(moderators, s.DeleteUser))

	// Platform super admin.
	mux.Handle("GET /api/super/users", gated(super, s.ListUsers))
	mux.Handle("POST /api/super/admin-codes", gated(super, s.GenerateAdminCode))
	mux.Handle("GET /api/super/admin-codes", gated(super, s.ListAdminCodes))
	mux.Handle("GET /api/super/activity", gated(super, s.ActivityLog))
	mux.Handle("GET /api/super/schools", gated(super, s.Schools))
	mux.Handle("POST /api/super/sync", gated(super, s.Sync))

	// Proof files.
	mux.Handle("GET "+uploads.URLPrefix, s.Uploads.Handler())

	return middleware.CORS(middleware.Logger(s.Log)(mux))
}
