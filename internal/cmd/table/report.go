package table

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/jokeraudit/internal/cmd/emoji"
	"github.com/agentstation/jokeraudit/pkg/canonical"
	"github.com/agentstation/jokeraudit/pkg/reconciler"
)

// AuditView selects what an audit prints.
type AuditView struct {
	Report *reconciler.Report
	Target int                 // expected total, 0 to omit completion
	Wide   bool                // include effect, unlock and every name
	Keep   func(string) bool   // name filter, nil keeps all
	Hints  map[string][]string // missing name -> candidate identifiers
}

func (v AuditView) keep(name string) bool {
	return v.Keep == nil || v.Keep(name)
}

// AuditSections renders the summary, duplicates and missing tables, and in
// wide mode the full name mapping and undocumented identifiers.
func AuditSections(v AuditView) []Section {
	sections := []Section{
		SummarySection(v.Report, v.Target),
		DuplicatesSection(v),
		MissingSection(v),
	}
	if v.Wide {
		sections = append(sections, NamesSection(v), UndocumentedSection(v.Report))
	}
	return sections
}

// SummarySection lists the report counts.
func SummarySection(r *reconciler.Report, target int) Section {
	c := r.Counts
	rows := [][]string{
		{"Implemented identifiers", strconv.Itoa(c.Implemented)},
		{"Document rows", strconv.Itoa(c.Rows)},
		{"Unique names", strconv.Itoa(c.Unique)},
		{"Duplicate names", strconv.Itoa(c.Duplicates)},
		{"Missing implementations", strconv.Itoa(c.Missing)},
		{"Undocumented identifiers", strconv.Itoa(c.Undocumented)},
	}
	var notes []string
	if target > 0 {
		comp := r.Completion(target)
		rows = append(rows, []string{"Completion", comp.String()})
		if comp.Shortfall > 0 {
			notes = append(notes, fmt.Sprintf("To reach %d: implement %d more", target, comp.Shortfall))
		}
	}
	if r.Clean() {
		notes = append(notes, emoji.Success+" Document and implementation agree")
	}
	return Section{
		Title: "Summary",
		Data: Data{
			Headers:         []string{"Metric", "Count"},
			Rows:            rows,
			ColumnAlignment: []Align{AlignLeft, AlignRight},
		},
		Notes: notes,
	}
}

// DuplicatesSection lists every occurrence of each duplicated name.
func DuplicatesSection(v AuditView) Section {
	headers := []string{"Name", "Line", "Section", "#", "Cost"}
	if v.Wide {
		headers = append(headers, "Effect", "Unlock")
	}

	var rows [][]string
	var notes []string
	for _, g := range v.Report.Duplicates {
		if !v.keep(g.Name) {
			continue
		}
		for i, e := range g.Entries {
			name := g.Name
			if i > 0 {
				name = ""
			}
			row := []string{name, strconv.Itoa(e.Line), e.Rarity.String(), strconv.Itoa(e.Number), cost(e.Cost)}
			if v.Wide {
				row = append(row, e.Effect, e.Unlock)
			}
			rows = append(rows, row)
		}
		if g.CrossSection() {
			notes = append(notes, fmt.Sprintf("%s %s is listed under %s", emoji.Warning, g.Name, joinRarities(g)))
		}
	}
	return Section{
		Title: "Duplicates",
		Data:  Data{Headers: headers, Rows: rows, ColumnAlignment: duplicateAlignment(v.Wide)},
		Notes: notes,
	}
}

// MissingSection lists names with no implementation, sorted by name.
func MissingSection(v AuditView) Section {
	headers := []string{"Name", "Identifier", "Rarity", "Cost"}
	if v.Wide {
		headers = append(headers, "Effect", "Unlock")
	}
	if v.Hints != nil {
		headers = append(headers, "Did You Mean")
	}

	results := v.Report.MissingResults()
	slices.SortFunc(results, func(a, b reconciler.NameResult) int {
		return strings.Compare(a.Name, b.Name)
	})

	var rows [][]string
	for _, res := range results {
		if !v.keep(res.Name) {
			continue
		}
		row := []string{res.Name, res.Identifier, res.First.Rarity.String(), cost(res.First.Cost)}
		if v.Wide {
			row = append(row, res.First.Effect, res.First.Unlock)
		}
		if v.Hints != nil {
			row = append(row, dash(strings.Join(v.Hints[res.Name], ", ")))
		}
		rows = append(rows, row)
	}
	return Section{Title: "Missing", Data: Data{Headers: headers, Rows: rows}}
}

// NamesSection maps every distinct name to its identifier and status.
func NamesSection(v AuditView) Section {
	var rows [][]string
	for _, n := range v.Report.Names {
		if !v.keep(n.Name) {
			continue
		}
		override := ""
		if n.Override {
			override = "yes"
		}
		rows = append(rows, []string{
			StatusSymbol(n.Status), n.Name, n.Identifier, override, strconv.Itoa(n.Occurrences),
		})
	}
	return Section{
		Title: "Names",
		Data: Data{
			Headers:         []string{"", "Name", "Identifier", "Override", "Count"},
			Rows:            rows,
			ColumnAlignment: []Align{AlignCenter, AlignLeft, AlignLeft, AlignCenter, AlignRight},
		},
	}
}

// UndocumentedSection lists implemented identifiers no document name maps to.
func UndocumentedSection(r *reconciler.Report) Section {
	rows := make([][]string, 0, len(r.Undocumented))
	for _, id := range r.Undocumented {
		rows = append(rows, []string{id})
	}
	return Section{Title: "Undocumented", Data: Data{Headers: []string{"Identifier"}, Rows: rows}}
}

// OverridesData lists an override table sorted by display name, next to what
// the general rule alone would produce.
func OverridesData(overrides map[string]string) Data {
	names := slices.Sorted(maps.Keys(overrides))
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, overrides[name], canonical.Apply(name)})
	}
	return Data{Headers: []string{"Display Name", "Identifier", "Without Override"}, Rows: rows}
}

// MappingsData lists canonicalized names.
func MappingsData(mappings []canonical.Mapping) Data {
	rows := make([][]string, 0, len(mappings))
	for _, m := range mappings {
		source := "rule"
		if m.Override {
			source = "override"
		}
		rows = append(rows, []string{m.Name, m.Identifier, source})
	}
	return Data{Headers: []string{"Name", "Identifier", "Source"}, Rows: rows}
}

// StatusSymbol returns the symbol for a name status.
func StatusSymbol(s reconciler.Status) string {
	switch s {
	case reconciler.StatusMatched:
		return emoji.Success
	case reconciler.StatusMissing:
		return emoji.Error
	case reconciler.StatusDuplicate:
		return emoji.Warning
	case reconciler.StatusMissingDuplicate:
		return emoji.Error + emoji.Warning
	default:
		return emoji.Unknown
	}
}

func duplicateAlignment(wide bool) []Align {
	align := []Align{AlignLeft, AlignRight, AlignLeft, AlignRight, AlignRight}
	if wide {
		align = append(align, AlignLeft, AlignLeft)
	}
	return align
}

func joinRarities(g reconciler.DuplicateGroup) string {
	rarities := g.Rarities()
	parts := make([]string, len(rarities))
	for i, r := range rarities {
		parts[i] = r.String()
	}
	return strings.Join(parts, " and ")
}

func cost(c int) string {
	return "$" + strconv.Itoa(c)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
