package reconciler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/jokeraudit/pkg/catalog"
)

// Status is the finding for one distinct display name.
type Status string

// Name statuses. Missing and duplicate are independent findings, so a name
// can carry both.
const (
	StatusMatched          Status = "matched"
	StatusMissing          Status = "missing"
	StatusDuplicate        Status = "duplicate"
	StatusMissingDuplicate Status = "missing+duplicate"
)

// String returns the string representation of a Status.
func (s Status) String() string {
	return string(s)
}

// IsMissing reports whether the status includes a missing implementation.
func (s Status) IsMissing() bool {
	return s == StatusMissing || s == StatusMissingDuplicate
}

// IsDuplicate reports whether the status includes a duplicated name.
func (s Status) IsDuplicate() bool {
	return s == StatusDuplicate || s == StatusMissingDuplicate
}

func statusOf(missing, duplicate bool) Status {
	switch {
	case missing && duplicate:
		return StatusMissingDuplicate
	case missing:
		return StatusMissing
	case duplicate:
		return StatusDuplicate
	default:
		return StatusMatched
	}
}

// NameResult is the reconciliation outcome for one distinct display name.
type NameResult struct {
	Name        string        `json:"name" yaml:"name"`
	Identifier  string        `json:"identifier" yaml:"identifier"`
	Override    bool          `json:"override,omitempty" yaml:"override,omitempty"`
	Occurrences int           `json:"occurrences" yaml:"occurrences"`
	First       catalog.Entry `json:"first" yaml:"first"`
	Status      Status        `json:"status" yaml:"status"`
}

// DuplicateGroup holds every occurrence of a display name that appears more
// than once, in document order.
type DuplicateGroup struct {
	Name    string          `json:"name" yaml:"name"`
	Entries []catalog.Entry `json:"entries" yaml:"entries"`
}

// Rarities returns the distinct sections the name appears under, in order.
func (g DuplicateGroup) Rarities() []catalog.Rarity {
	var out []catalog.Rarity
	for _, e := range g.Entries {
		if !slices.Contains(out, e.Rarity) {
			out = append(out, e.Rarity)
		}
	}
	return out
}

// CrossSection reports whether the occurrences disagree on rarity.
func (g DuplicateGroup) CrossSection() bool {
	return len(g.Rarities()) > 1
}

// Counts summarizes a report.
type Counts struct {
	Implemented  int `json:"implemented" yaml:"implemented"`
	Unique       int `json:"unique" yaml:"unique"`
	Duplicates   int `json:"duplicates" yaml:"duplicates"`
	Missing      int `json:"missing" yaml:"missing"`
	Rows         int `json:"rows" yaml:"rows"`
	Undocumented int `json:"undocumented" yaml:"undocumented"`
}

// Report is the result of one reconciliation. It is built once and not
// modified afterwards.
type Report struct {
	Names        []NameResult     `json:"names" yaml:"names"`
	Duplicates   []DuplicateGroup `json:"duplicates" yaml:"duplicates"`
	Missing      []string         `json:"missing" yaml:"missing"`
	Undocumented []string         `json:"undocumented" yaml:"undocumented"`
	Counts       Counts           `json:"counts" yaml:"counts"`
}

// Result returns the outcome for a display name.
func (r *Report) Result(name string) (NameResult, bool) {
	for _, n := range r.Names {
		if n.Name == name {
			return n, true
		}
	}
	return NameResult{}, false
}

// Duplicate returns the duplicate group for a display name.
func (r *Report) Duplicate(name string) (DuplicateGroup, bool) {
	for _, g := range r.Duplicates {
		if g.Name == name {
			return g, true
		}
	}
	return DuplicateGroup{}, false
}

// IsMissing reports whether name is in the missing list.
func (r *Report) IsMissing(name string) bool {
	return slices.Contains(r.Missing, name)
}

// MissingResults returns the NameResult of every missing name, in report order.
func (r *Report) MissingResults() []NameResult {
	var out []NameResult
	for _, n := range r.Names {
		if n.Status.IsMissing() {
			out = append(out, n)
		}
	}
	return out
}

// Clean reports whether nothing is missing and nothing is duplicated.
func (r *Report) Clean() bool {
	return r.Counts.Missing == 0 && r.Counts.Duplicates == 0
}

// Summary returns a one-line description of the counts.
func (r *Report) Summary() string {
	c := r.Counts
	return fmt.Sprintf("%d implemented, %d unique %s, %d %s, %d missing",
		c.Implemented,
		c.Unique, plural(c.Unique, "name", "names"),
		c.Duplicates, plural(c.Duplicates, "duplicate", "duplicates"),
		c.Missing)
}

// Completion measures the implemented count against an expected total.
type Completion struct {
	Implemented int     `json:"implemented" yaml:"implemented"`
	Target      int     `json:"target" yaml:"target"`
	Percent     float64 `json:"percent" yaml:"percent"`
	Shortfall   int     `json:"shortfall" yaml:"shortfall"`
}

// String formats the completion as "146 of 150 (97.3%)".
func (c Completion) String() string {
	return fmt.Sprintf("%d of %d (%.1f%%)", c.Implemented, c.Target, c.Percent)
}

// Completion compares the implemented identifier count with target.
// A non-positive target yields the zero Completion.
func (r *Report) Completion(target int) Completion {
	if target <= 0 {
		return Completion{}
	}
	impl := r.Counts.Implemented
	return Completion{
		Implemented: impl,
		Target:      target,
		Percent:     float64(impl) * 100 / float64(target),
		Shortfall:   max(target-impl, 0),
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// String implements fmt.Stringer.
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString(r.Summary())
	if len(r.Missing) > 0 {
		fmt.Fprintf(&b, "\nmissing: %s", strings.Join(r.Missing, ", "))
	}
	for _, g := range r.Duplicates {
		fmt.Fprintf(&b, "\nduplicate: %s x%d", g.Name, len(g.Entries))
	}
	return b.String()
}
