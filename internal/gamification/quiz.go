package gamification

import (
	"math"

	"github.com/Elizabethomito/ecolearn/internal/models"
)

// Score returns the percentage of correct answers, rounded to the nearest
// integer. answers[i] is the option picked for question i; anything out of
// range (including a missing entry) counts as wrong.
func Score(q models.Quiz, answers []int) (score, correct int) {
	total := len(q.Questions)
	if total == 0 {
		return 0, 0
	}
	for i, question := range q.Questions {
		if i < len(answers) && answers[i] == question.CorrectAnswer {
			correct++
		}
	}
	score = int(math.Round(float64(correct) / float64(total) * 100))
	return score, correct
}

// Passed reports whether score meets the quiz's passing score.
func Passed(q models.Quiz, score int) bool {
	return score >= q.PassingScore
}

// Grade scores an attempt and builds the per-question review. It does not
// touch any user; see CompleteQuiz.
func Grade(q models.Quiz, answers []int) models.QuizResult {
	score, correct := Score(q, answers)
	review := make([]models.AnswerReview, 0, len(q.Questions))
	for i, question := range q.Questions {
		selected := -1
		if i < len(answers) {
			selected = answers[i]
		}
		review = append(review, models.AnswerReview{
			QuestionID:    question.ID,
			Selected:      selected,
			CorrectAnswer: question.CorrectAnswer,
			Correct:       selected == question.CorrectAnswer,
			Explanation:   question.Explanation,
		})
	}
	return models.QuizResult{
		QuizID:       q.ID,
		Score:        score,
		PassingScore: q.PassingScore,
		Passed:       Passed(q, score),
		Correct:      correct,
		Total:        len(q.Questions),
		Review:       review,
	}
}
