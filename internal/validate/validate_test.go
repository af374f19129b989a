package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
	"github.com/Elizabethomito/ecolearn/internal/models"
)

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(models.RegisterRequest{
		Name: "Asha", Email: "not-an-email", Password: "secret1",
		Role: models.RoleStudent, SchoolName: "Green Valley",
	})
	require.Error(t, err)

	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "email", ve.Field)
	assert.Contains(t, ve.Message, "valid email")
}

func TestStructNestedPath(t *testing.T) {
	q := models.Quiz{
		LessonID: "lesson-1", Title: "Quiz", PassingScore: 70,
		Questions: []models.Question{
			{Question: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0},
			{Question: "Q2", Options: []string{"a", "b"}, CorrectAnswer: 0},
		},
	}
	err := Struct(q)
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "questions[1].options", ve.Field)
}

func TestStructOK(t *testing.T) {
	assert.NoError(t, Struct(models.LoginRequest{Email: "a@b.c", Password: "x"}))
}
