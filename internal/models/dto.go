package models

// ---- Request / Response DTOs ----

type RegisterRequest struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=6"`
	ConfirmPassword string   `json:"confirmPassword" validate:"omitempty,eqfield=Password"`
	Role            UserRole `json:"role" validate:"required,oneof=student teacher admin"`
	SchoolName      string   `json:"schoolName" validate:"required"`
	ClassGrade      string   `json:"classGrade"`
	AdminCode       string   `json:"adminCode" validate:"omitempty,len=5,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token and where the UI should land.
type LoginResponse struct {
	Token    string `json:"token"`
	User     User   `json:"user"`
	Redirect string `json:"redirect"`
}

// MeResponse is the logged-in user plus the access decision for their
// default destination.
type MeResponse struct {
	User              User   `json:"user"`
	Redirect          string `json:"redirect"`
	Pending           bool   `json:"pending"`
	LevelName         string `json:"levelName"`
	PointsToNextLevel int    `json:"pointsToNextLevel"`
}

// ProgressOutcome describes what a completion did to a user's progress.
// A repeated completion reports AlreadyCompleted and changes nothing.
// PointsToNextLevel is 0 at the top tier.
type ProgressOutcome struct {
	AlreadyCompleted  bool     `json:"alreadyCompleted"`
	PointsAwarded     int      `json:"pointsAwarded"`
	BadgesGranted     []string `json:"badgesGranted"`
	EcoPoints         int      `json:"ecoPoints"`
	Level             int      `json:"level"`
	LevelName         string   `json:"levelName"`
	PointsToNextLevel int      `json:"pointsToNextLevel"`
	LevelUp           bool     `json:"levelUp"`
}

type QuizSubmitRequest struct {
	// Answers holds the chosen option index per question; -1 (or a missing
	// trailing entry) means unanswered.
	Answers []int `json:"answers"`
}

type AnswerReview struct {
	QuestionID    string `json:"questionId"`
	Selected      int    `json:"selected"`
	CorrectAnswer int    `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation"`
}

type QuizResult struct {
	QuizID       string          `json:"quizId"`
	Score        int             `json:"score"`
	PassingScore int             `json:"passingScore"`
	Passed       bool            `json:"passed"`
	Correct      int             `json:"correct"`
	Total        int             `json:"total"`
	Review       []AnswerReview  `json:"review"`
	Progress     ProgressOutcome `json:"progress"`
}

type CreateSubmissionRequest struct {
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
}

// ReviewResult is returned by approve/reject.
type ReviewResult struct {
	Submission Submission       `json:"submission"`
	Progress   *ProgressOutcome `json:"progress,omitempty"`
}

type ChallengeStatusResponse struct {
	ChallengeID string          `json:"challengeId"`
	Status      ChallengeStatus `json:"status"`
	Latest      *Submission     `json:"latest,omitempty"`
}

type AdminCodeRequest struct {
	SchoolName string `json:"schoolName" validate:"required"`
}

type SyncReport struct {
	Replayed int `json:"replayed"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
	Pending  int `json:"pending"`
}
