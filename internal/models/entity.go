package models

import "time"

// Key and Modified let the store treat every persisted record the same way:
// Key is the upsert identity and Modified is the timestamp compared when two
// copies of a record disagree.

func (u User) Key() string           { return u.ID }
func (u User) Modified() time.Time   { return u.UpdatedAt }
func (l Lesson) Key() string         { return l.ID }
func (l Lesson) Modified() time.Time { return l.UpdatedAt }
func (q Quiz) Key() string           { return q.ID }
func (q Quiz) Modified() time.Time   { return q.UpdatedAt }
func (c Challenge) Key() string      { return c.ID }
func (c Challenge) Modified() time.Time {
	return c.UpdatedAt
}
func (s Submission) Key() string         { return s.ID }
func (s Submission) Modified() time.Time { return s.UpdatedAt }
func (a AdminCode) Key() string          { return a.ID }

// Modified for an admin code is the moment it was consumed, or created if
// it is still unused.
func (a AdminCode) Modified() time.Time {
	if a.UsedAt != nil {
		return *a.UsedAt
	}
	return a.CreatedAt
}

func (e ActivityEntry) Key() string         { return e.ID }
func (e ActivityEntry) Modified() time.Time { return e.Timestamp }
