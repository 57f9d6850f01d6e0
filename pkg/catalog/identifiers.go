package catalog

import (
	"encoding/json"
	"strings"
)

// Key returns the case-insensitive comparison key for an identifier.
func Key(id string) string {
	return strings.ToLower(id)
}

// Identifiers is the ordered set of identifiers implemented by the engine.
// Exact duplicates collapse on insert; membership is case-insensitive.
// The zero value is an empty set ready to use.
type Identifiers struct {
	ids  []string
	seen map[string]struct{} // exact spellings
	keys map[string]struct{} // lowercase keys
}

// NewIdentifiers creates a set from the given identifiers, keeping first-seen order.
func NewIdentifiers(ids ...string) Identifiers {
	var s Identifiers
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was not already present.
func (s *Identifiers) Add(id string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
		s.keys = make(map[string]struct{})
	}
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.keys[Key(id)] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// Contains reports whether an identifier with the same lowercase key is present.
func (s Identifiers) Contains(id string) bool {
	_, ok := s.keys[Key(id)]
	return ok
}

// Len returns the number of distinct identifiers.
func (s Identifiers) Len() int {
	return len(s.ids)
}

// List returns a copy of the identifiers in insertion order.
func (s Identifiers) List() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// MarshalJSON encodes the set as a JSON array.
func (s Identifiers) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

// UnmarshalJSON decodes a JSON array into the set.
func (s *Identifiers) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIdentifiers(ids...)
	return nil
}

// MarshalYAML encodes the set as a YAML sequence.
func (s Identifiers) MarshalYAML() (any, error) {
	return s.List(), nil
}
