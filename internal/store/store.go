// Package store is the persistence layer. Every entity collection goes
// through one Backend interface. Local (SQLite) and Postgres implement
// it, and Fallback decorates a remote backend with a local one so a
// remote outage degrades to single-device operation instead of failing.
package store

import (
	"context"
	"encoding/json"
	"time"
)

// Kind names an entity collection.
type Kind string

const (
	KindUsers       Kind = "users"
	KindLessons     Kind = "lessons"
	KindQuizzes     Kind = "quizzes"
	KindChallenges  Kind = "challenges"
	KindSubmissions Kind = "submissions"
	KindAdminCodes  Kind = "admin_codes"
	KindActivity    Kind = "activity"
)

// Kinds lists every collection.
func Kinds() []Kind {
	return []Kind{KindUsers, KindLessons, KindQuizzes, KindChallenges, KindSubmissions, KindAdminCodes, KindActivity}
}

// Record is one persisted entity: its id, the timestamp last-write-wins
// compares, and the entity itself as JSON.
type Record struct {
	ID        string          `json:"id"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Data      json.RawMessage `json:"data"`
}

// Filter selects records whose top-level JSON field equals Value. The zero
// Filter matches everything.
type Filter struct {
	Field string
	Value string
}

// All is the empty filter.
var All = Filter{}

// Match reports whether the record data satisfies f.
func (f Filter) Match(data json.RawMessage) bool {
	if f.Field == "" {
		return true
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return false
	}
	raw, ok := fields[f.Field]
	if !ok {
		return false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s == f.Value
	}
	return string(raw) == f.Value
}

// Backend is row-level CRUD over named collections.
//
// Get returns apperr.ErrNotFound for a missing id. Delete of a missing id
// is not an error. Put is an upsert by id.
type Backend interface {
	Name() string
	List(ctx context.Context, kind Kind, f Filter) ([]Record, error)
	Get(ctx context.Context, kind Kind, id string) (Record, error)
	Put(ctx context.Context, kind Kind, rec Record) error
	Delete(ctx context.Context, kind Kind, id string) error
}
