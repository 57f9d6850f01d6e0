// Package reconciler compares joker entries from the reference document with
// the identifiers implemented by the engine.
//
// Entries are grouped by display name. Each distinct name is canonicalized
// once and looked up case-insensitively in the implemented set. Names that
// occur more than once are reported as duplicate groups with every
// occurrence, so a reviewer can see which sections disagree. Nothing is
// resolved automatically.
package reconciler

import (
	"github.com/agentstation/jokeraudit/pkg/catalog"
)

// Reconciler builds reports from extracted inputs.
type Reconciler interface {
	// Reconcile is total: it never fails and never drops a name.
	Reconcile(entries []catalog.Entry, implemented catalog.Identifiers) *Report
}

type reconciler struct {
	opts *options
}

// New creates a Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{opts: o}, nil
}

// Reconcile reconciles with the built-in canonicalization rules.
func Reconcile(entries []catalog.Entry, implemented catalog.Identifiers) *Report {
	return (&reconciler{opts: defaultOptions()}).Reconcile(entries, implemented)
}

// group is every occurrence of one display name.
type group struct {
	name    string
	entries []catalog.Entry
}

// groupByName keeps first-seen order of names and document order within a name.
func groupByName(entries []catalog.Entry) []group {
	index := make(map[string]int)
	var groups []group
	for _, e := range entries {
		i, ok := index[e.Name]
		if !ok {
			i = len(groups)
			index[e.Name] = i
			groups = append(groups, group{name: e.Name})
		}
		groups[i].entries = append(groups[i].entries, e)
	}
	return groups
}

func (r *reconciler) Reconcile(entries []catalog.Entry, implemented catalog.Identifiers) *Report {
	c := r.opts.canonicalizer
	groups := groupByName(entries)

	report := &Report{
		Names:        make([]NameResult, 0, len(groups)),
		Duplicates:   []DuplicateGroup{},
		Missing:      []string{},
		Undocumented: []string{},
	}

	documented := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		id := c.Canonicalize(g.name)
		_, override := c.Lookup(g.name)
		documented[catalog.Key(id)] = struct{}{}

		missing := !implemented.Contains(id)
		duplicate := len(g.entries) >= 2

		if duplicate {
			occurrences := make([]catalog.Entry, len(g.entries))
			copy(occurrences, g.entries)
			report.Duplicates = append(report.Duplicates, DuplicateGroup{Name: g.name, Entries: occurrences})
		}
		if missing {
			report.Missing = append(report.Missing, g.name)
		}
		report.Names = append(report.Names, NameResult{
			Name:        g.name,
			Identifier:  id,
			Override:    override,
			Occurrences: len(g.entries),
			First:       g.entries[0],
			Status:      statusOf(missing, duplicate),
		})
	}

	for _, id := range implemented.List() {
		if _, ok := documented[catalog.Key(id)]; !ok {
			report.Undocumented = append(report.Undocumented, id)
		}
	}

	report.Counts = Counts{
		Implemented:  implemented.Len(),
		Unique:       len(groups),
		Duplicates:   len(report.Duplicates),
		Missing:      len(report.Missing),
		Rows:         len(entries),
		Undocumented: len(report.Undocumented),
	}
	return report
}
