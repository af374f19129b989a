package gamification

import "github.com/Elizabethomito/ecolearn/internal/models"

// Badge ids awarded by the rules below. They must match the catalog.
const (
	BadgeFirstLesson     = "first-lesson"
	BadgeLessonMaster    = "lesson-master"
	BadgeQuizMaster      = "quiz-master"
	BadgeFirstChallenge  = "first-challenge"
	BadgeChallengeHero   = "challenge-hero"
	BadgeTreePlanter     = "tree-planter"
	BadgePlasticWarrior  = "plastic-warrior"
	BadgeWaterGuardian   = "water-guardian"
	BadgeCommunityLeader = "community-leader"
	BadgeEcoLegend       = "eco-legend"
)

// Rule thresholds.
const (
	LessonMasterCount  = 5
	ChallengeHeroCount = 5
	QuizMasterCount    = 3
	QuizMasterMinScore = 80
)

// challengeBadges maps a challenge id to the thematic badge its first
// approval unlocks.
var challengeBadges = map[string]string{
	"challenge-1": BadgeTreePlanter,
	"challenge-2": BadgePlasticWarrior,
	"challenge-3": BadgeWaterGuardian,
	"challenge-4": BadgeCommunityLeader,
}

// ChallengeBadge returns the thematic badge tied to a challenge, if any.
func ChallengeBadge(challengeID string) (string, bool) {
	b, ok := challengeBadges[challengeID]
	return b, ok
}

// AddPoints adds pts to the user's balance and recomputes the level.
// Points never go down through play, so non-positive amounts are ignored.
func AddPoints(u *models.User, pts int) {
	if pts > 0 {
		u.EcoPoints += pts
	}
	Recalculate(u)
}

// Recalculate derives Level from EcoPoints. Stored levels are never
// trusted; any load path that might carry a stale value calls this.
func Recalculate(u *models.User) {
	if u.EcoPoints < 0 {
		u.EcoPoints = 0
	}
	u.Level = LevelFor(u.EcoPoints)
}

// GrantBadge adds a badge and reports whether the user did not have it yet.
func GrantBadge(u *models.User, badgeID string) bool {
	return u.Badges.Add(badgeID)
}

// tracker accumulates the outcome of one completion.
type tracker struct {
	u           *models.User
	levelBefore int
	out         models.ProgressOutcome
}

func begin(u *models.User) *tracker {
	Recalculate(u)
	return &tracker{u: u, levelBefore: u.Level, out: models.ProgressOutcome{BadgesGranted: []string{}}}
}

func (t *tracker) points(n int) {
	before := t.u.EcoPoints
	AddPoints(t.u, n)
	t.out.PointsAwarded += t.u.EcoPoints - before
}

func (t *tracker) grant(badgeID string) {
	if GrantBadge(t.u, badgeID) {
		t.out.BadgesGranted = append(t.out.BadgesGranted, badgeID)
	}
}

func (t *tracker) already() models.ProgressOutcome {
	t.out.AlreadyCompleted = true
	return t.finish()
}

func (t *tracker) finish() models.ProgressOutcome {
	if t.u.Level >= MaxLevel {
		t.grant(BadgeEcoLegend)
	}
	t.out.EcoPoints = t.u.EcoPoints
	t.out.Level = t.u.Level
	t.out.LevelName = LevelName(t.u.Level)
	t.out.PointsToNextLevel = PointsToNextLevel(t.u.EcoPoints)
	t.out.LevelUp = t.u.Level > t.levelBefore
	return t.out
}

// CompleteLesson records a lesson completion, awards its points and
// evaluates the lesson badges against the count before this completion.
func CompleteLesson(u *models.User, l models.Lesson) models.ProgressOutcome {
	t := begin(u)
	if u.CompletedLessons.Has(l.ID) {
		return t.already()
	}
	before := u.CompletedLessons.Len()
	u.CompletedLessons.Add(l.ID)
	t.points(l.EcoPoints)

	if before == 0 {
		t.grant(BadgeFirstLesson)
	}
	if before+1 >= LessonMasterCount {
		t.grant(BadgeLessonMaster)
	}
	return t.finish()
}

// CompleteQuiz records a passed quiz. A score below the quiz's passing
// score changes nothing.
//
// The quiz-master rule looks at the score of this attempt only, not at the
// scores of the earlier quizzes that make up the count.
func CompleteQuiz(u *models.User, q models.Quiz, score int) models.ProgressOutcome {
	t := begin(u)
	if !Passed(q, score) {
		return t.finish()
	}
	if u.CompletedQuizzes.Has(q.ID) {
		return t.already()
	}
	before := u.CompletedQuizzes.Len()
	u.CompletedQuizzes.Add(q.ID)
	t.points(q.EcoPoints)

	if before+1 >= QuizMasterCount && score >= QuizMasterMinScore {
		t.grant(BadgeQuizMaster)
	}
	return t.finish()
}

// CompleteChallenge records the first approval of a challenge for a user.
func CompleteChallenge(u *models.User, c models.Challenge) models.ProgressOutcome {
	t := begin(u)
	if u.CompletedChallenges.Has(c.ID) {
		return t.already()
	}
	before := u.CompletedChallenges.Len()
	u.CompletedChallenges.Add(c.ID)
	t.points(c.EcoPoints)

	if before == 0 {
		t.grant(BadgeFirstChallenge)
	}
	if before+1 >= ChallengeHeroCount {
		t.grant(BadgeChallengeHero)
	}
	if badge, ok := ChallengeBadge(c.ID); ok {
		t.grant(badge)
	}
	return t.finish()
}
