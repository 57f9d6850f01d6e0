// Package extract turns the raw inputs of an audit into structured records:
// joker entries from the reference document, and the implemented identifier
// set from the engine source.
package extract

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/jokeraudit/pkg/catalog"
	"github.com/agentstation/jokeraudit/pkg/errors"
)

// rowPattern matches `| <int> | <name> | $<int> | <effect> | <unlock> |` at the
// start of a line. The closing delimiter is required.
var rowPattern = regexp.MustCompile(`^\|\s*(\d+)\s*\|\s*([^|]+?)\s*\|\s*\$(\d+)\s*\|\s*([^|]+?)\s*\|\s*([^|]+?)\s*\|`)

// tableLike matches lines that open like a data row. Those that then fail
// rowPattern are recorded as malformed.
var tableLike = regexp.MustCompile(`^\|\s*\d+\s*\|`)

// sectionMarkers are checked in order; the first marker found in a line wins.
var sectionMarkers = []struct {
	marker string
	rarity catalog.Rarity
}{
	{"# Common Jokers", catalog.RarityCommon},
	{"# Uncommon Jokers", catalog.RarityUncommon},
	{"# Rare Jokers", catalog.RarityRare},
	{"# Legendary Jokers", catalog.RarityLegendary},
}

// Stats describes how the document lines were classified.
type Stats struct {
	Lines     int                         `json:"lines" yaml:"lines"`
	Rows      int                         `json:"rows" yaml:"rows"`
	Headers   int                         `json:"headers" yaml:"headers"`
	Skipped   int                         `json:"skipped" yaml:"skipped"`
	Malformed []*errors.MalformedRowError `json:"-" yaml:"-"`
}

// sectionState is the rarity in effect while walking the document.
type sectionState struct {
	rarity  catalog.Rarity
	headers int
}

// advance returns the state after line, switching section on a header.
func (s sectionState) advance(line string) (sectionState, bool) {
	for _, m := range sectionMarkers {
		if strings.Contains(line, m.marker) {
			return sectionState{rarity: m.rarity, headers: s.headers + 1}, true
		}
	}
	return s, false
}

// documentState is the accumulator folded over the document lines.
type documentState struct {
	section sectionState
	entries []catalog.Entry
	stats   Stats
}

func newDocumentState() documentState {
	return documentState{section: sectionState{rarity: catalog.RarityUnknown}}
}

// step consumes one line. lineNo is 1-based.
func (d documentState) step(lineNo int, line string) documentState {
	d.stats.Lines++

	section, header := d.section.advance(line)
	d.section = section
	if header {
		d.stats.Headers++
	}

	entry, ok := parseRow(line)
	switch {
	case ok:
		entry.Rarity = d.section.rarity
		entry.Line = lineNo
		d.entries = append(d.entries, entry)
		d.stats.Rows++
	case tableLike.MatchString(line):
		d.stats.Malformed = append(d.stats.Malformed, &errors.MalformedRowError{Line: lineNo, Text: line})
	case !header:
		d.stats.Skipped++
	}
	return d
}

// fold runs step over lines in order.
func fold(lines []string) documentState {
	state := newDocumentState()
	for i, line := range lines {
		state = state.step(i+1, line)
	}
	return state
}

// parseRow converts a matching line into an entry without section or line.
// Rows whose numbers overflow int are rejected.
func parseRow(line string) (catalog.Entry, bool) {
	m := rowPattern.FindStringSubmatch(line)
	if m == nil {
		return catalog.Entry{}, false
	}
	num, err := strconv.Atoi(m[1])
	if err != nil {
		return catalog.Entry{}, false
	}
	cost, err := strconv.Atoi(m[3])
	if err != nil {
		return catalog.Entry{}, false
	}
	return catalog.Entry{
		Name:   strings.TrimSpace(m[2]),
		Number: num,
		Cost:   cost,
		Effect: strings.TrimSpace(m[4]),
		Unlock: strings.TrimSpace(m[5]),
	}, true
}

// ParseLines extracts entries from already-split document lines.
func ParseLines(lines []string) ([]catalog.Entry, Stats) {
	state := fold(lines)
	return state.entries, state.stats
}

// ParseDocument reads the reference document from r and returns its entries
// in document order. Lines that are not data rows are skipped whatever their
// length; only a read failure is an error.
func ParseDocument(r io.Reader) ([]catalog.Entry, Stats, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Stats{}, errors.NewInputError("document", "", err)
		}
	}
	entries, stats := ParseLines(lines)
	return entries, stats, nil
}

// ParseDocumentString is ParseDocument over an in-memory document.
func ParseDocumentString(doc string) ([]catalog.Entry, Stats) {
	lines := strings.Split(strings.TrimSuffix(doc, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	if doc == "" {
		lines = nil
	}
	return ParseLines(lines)
}
