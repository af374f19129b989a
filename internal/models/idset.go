package models

import "encoding/json"

// IDSet is an insertion-ordered set of ids. It backs the badge and
// completed-content collections so duplicate membership cannot be
// represented at all, whichever code path adds to it.
type IDSet struct {
	ids []string
}

// NewIDSet builds a set from ids, dropping duplicates and empty strings.
func NewIDSet(ids ...string) IDSet {
	var s IDSet
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether the set changed.
func (s *IDSet) Add(id string) bool {
	if id == "" || s.Has(id) {
		return false
	}
	// Full slice expression: copies of a User share the backing array, so
	// an append must never write into capacity another copy can see.
	s.ids = append(s.ids[:len(s.ids):len(s.ids)], id)
	return true
}

// Has reports membership.
func (s IDSet) Has(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (s IDSet) Len() int { return len(s.ids) }

// Slice returns a copy of the members in insertion order. Never nil.
func (s IDSet) Slice() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// MarshalJSON encodes the set as a JSON array ([] when empty).
func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON accepts a JSON array (or null) and de-duplicates it.
func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
