package catalog

import "github.com/Elizabethomito/ecolearn/internal/models"

// Badges returns the badge catalog. Users hold only the ids; this is what
// the UI matches them against. top-10 and streak-7 are display-only entries
// that no rule grants yet.
func Badges() []models.Badge {
	return []models.Badge{
		{ID: "first-lesson", Name: "First Steps", Description: "Complete your first environmental lesson", Icon: "🌱", Requirement: "Complete 1 lesson", Category: "Learning"},
		{ID: "lesson-master", Name: "Knowledge Seeker", Description: "Complete 5 environmental lessons", Icon: "📚", Requirement: "Complete 5 lessons", Category: "Learning"},
		{ID: "quiz-master", Name: "Quiz Champion", Description: "Pass 3 quizzes with 80% or higher", Icon: "🏆", Requirement: "Pass 3 quizzes with 80%+", Category: "Assessment"},
		{ID: "first-challenge", Name: "Action Taker", Description: "Complete your first real-world challenge", Icon: "⚡", Requirement: "Complete 1 challenge", Category: "Action"},
		{ID: "challenge-hero", Name: "Eco Warrior", Description: "Complete 5 environmental challenges", Icon: "🦸", Requirement: "Complete 5 challenges", Category: "Action"},
		{ID: "tree-planter", Name: "Tree Planter", Description: "Plant and document a tree", Icon: "🌳", Requirement: "Complete tree planting challenge", Category: "Special"},
		{ID: "plastic-warrior", Name: "Plastic Warrior", Description: "Complete plastic-free week challenge", Icon: "♻️", Requirement: "Complete plastic-free challenge", Category: "Special"},
		{ID: "water-guardian", Name: "Water Guardian", Description: "Complete water conservation audit", Icon: "💧", Requirement: "Complete water audit challenge", Category: "Special"},
		{ID: "community-leader", Name: "Community Leader", Description: "Organize a community clean-up drive", Icon: "👥", Requirement: "Complete community clean-up", Category: "Leadership"},
		{ID: "top-10", Name: "Top 10 Achiever", Description: "Reach top 10 in school leaderboard", Icon: "🥇", Requirement: "Rank in top 10", Category: "Achievement"},
		{ID: "eco-legend", Name: "Eco Legend", Description: "Reach the highest eco level", Icon: "👑", Requirement: "Reach level 8", Category: "Achievement"},
		{ID: "streak-7", Name: "Week Warrior", Description: "Stay active 7 days in a row", Icon: "🔥", Requirement: "7-day streak", Category: "Consistency"},
	}
}

// Badge looks up one catalog entry.
func Badge(id string) (models.Badge, bool) {
	for _, b := range Badges() {
		if b.ID == id {
			return b, true
		}
	}
	return models.Badge{}, false
}
