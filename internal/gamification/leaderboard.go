package gamification

import (
	"math"
	"sort"

	"github.com/Elizabethomito/ecolearn/internal/models"
)

// Leaderboard ranks students by eco-points, highest first. An empty
// schoolID ranks every school together. Ties are ordered by name so the
// ranking is stable between refreshes.
func Leaderboard(users []models.User, schoolID string) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		if u.Role != models.RoleStudent {
			continue
		}
		if schoolID != "" && u.SchoolID != schoolID {
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			UserID:     u.ID,
			UserName:   u.Name,
			SchoolName: u.SchoolName,
			ClassGrade: u.ClassGrade,
			EcoPoints:  u.EcoPoints,
			Level:      LevelFor(u.EcoPoints),
			BadgeCount: u.Badges.Len(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].EcoPoints != entries[j].EcoPoints {
			return entries[i].EcoPoints > entries[j].EcoPoints
		}
		return entries[i].UserName < entries[j].UserName
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// SchoolRankings aggregates students per school and ranks schools by total
// eco-points.
func SchoolRankings(users []models.User) []models.SchoolStats {
	bySchool := map[string]*models.SchoolStats{}
	var order []string
	for _, u := range users {
		if u.Role != models.RoleStudent || u.SchoolID == "" {
			continue
		}
		st, ok := bySchool[u.SchoolID]
		if !ok {
			st = &models.SchoolStats{SchoolID: u.SchoolID, SchoolName: u.SchoolName}
			bySchool[u.SchoolID] = st
			order = append(order, u.SchoolID)
		}
		st.TotalStudents++
		st.TotalEcoPoints += u.EcoPoints
		st.CompletedChallenges += u.CompletedChallenges.Len()
	}

	stats := make([]models.SchoolStats, 0, len(order))
	for _, id := range order {
		st := bySchool[id]
		st.AveragePoints = int(math.Round(float64(st.TotalEcoPoints) / float64(st.TotalStudents)))
		stats = append(stats, *st)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalEcoPoints > stats[j].TotalEcoPoints
	})
	for i := range stats {
		stats[i].Rank = i + 1
	}
	return stats
}
