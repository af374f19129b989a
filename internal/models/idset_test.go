package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDSet_AddIsSetUnion(t *testing.T) {
	var s IDSet
	assert.True(t, s.Add("lesson-1"))
	assert.False(t, s.Add("lesson-1"))
	assert.False(t, s.Add(""))
	assert.True(t, s.Add("lesson-2"))
	assert.Equal(t, []string{"lesson-1", "lesson-2"}, s.Slice())
}

func TestIDSet_CopiesDoNotAlias(t *testing.T) {
	a := NewIDSet("x")
	a.Add("y")
	b := a
	a.Add("from-a")
	b.Add("from-b")

	assert.Equal(t, []string{"x", "y", "from-a"}, a.Slice())
	assert.Equal(t, []string{"x", "y", "from-b"}, b.Slice())
}

func TestIDSet_JSONDeduplicates(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"badges":["a","a","b"],"completedLessons":null}`), &u))
	assert.Equal(t, 2, u.Badges.Len())
	assert.Equal(t, 0, u.CompletedLessons.Len())

	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"badges":["a","b"]`)
	assert.Contains(t, string(out), `"completedLessons":[]`)
}

func TestStatusNormalize(t *testing.T) {
	assert.Equal(t, StatusActive, AccountStatus("").Normalize())
	assert.Equal(t, StatusPending, InitialStatus(RoleTeacher))
	assert.Equal(t, StatusActive, InitialStatus(RoleStudent))
	assert.True(t, SubmissionApproved.Terminal())
	assert.False(t, SubmissionPending.Terminal())
}

func TestSameSchool(t *testing.T) {
	a := User{SchoolID: "school-1", SchoolName: "Green Valley"}
	assert.True(t, a.SameSchool(User{SchoolID: "school-1"}))
	assert.True(t, a.SameSchool(User{SchoolID: "other", SchoolName: "green valley"}))
	assert.False(t, a.SameSchool(User{SchoolID: "other", SchoolName: "Blue Hill"}))
}
