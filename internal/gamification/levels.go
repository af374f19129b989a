// Package gamification holds the progress rules: how eco-points map to
// levels, when badges unlock, and how quizzes are graded.
//
// Nothing in here does I/O. Callers load a User, hand a pointer to one of
// the Complete* functions, and persist the result. Every function is safe to
// re-run on an already-updated user; repeated completions are no-ops.
package gamification

import "github.com/Elizabethomito/ecolearn/internal/models"

// levels is the fixed tier table, lowest first.
var levels = []models.Level{
	{Level: 1, Name: "Eco Beginner", MinPoints: 0},
	{Level: 2, Name: "Eco Explorer", MinPoints: 100},
	{Level: 3, Name: "Eco Enthusiast", MinPoints: 300},
	{Level: 4, Name: "Eco Champion", MinPoints: 600},
	{Level: 5, Name: "Eco Hero", MinPoints: 1000},
	{Level: 6, Name: "Eco Guardian", MinPoints: 1500},
	{Level: 7, Name: "Eco Warrior", MinPoints: 2500},
	{Level: 8, Name: "Eco Legend", MinPoints: 4000},
}

// MaxLevel is the top tier.
const MaxLevel = 8

// Levels returns a copy of the tier table.
func Levels() []models.Level {
	out := make([]models.Level, len(levels))
	copy(out, levels)
	return out
}

// LevelFor returns the highest tier whose threshold is <= points.
func LevelFor(points int) int {
	for i := len(levels) - 1; i >= 0; i-- {
		if points >= levels[i].MinPoints {
			return levels[i].Level
		}
	}
	return 1
}

// LevelName returns the display name of a level, defaulting to the first
// tier for out-of-range values.
func LevelName(level int) string {
	for _, l := range levels {
		if l.Level == level {
			return l.Name
		}
	}
	return levels[0].Name
}

// PointsToNextLevel returns how many more points are needed to reach the
// next tier, or 0 at the top tier.
func PointsToNextLevel(points int) int {
	current := LevelFor(points)
	for _, l := range levels {
		if l.Level == current+1 {
			return l.MinPoints - points
		}
	}
	return 0
}
