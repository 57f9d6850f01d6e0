package extract

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/jokeraudit/pkg/catalog"
	"github.com/agentstation/jokeraudit/pkg/errors"
)

func TestParseDocument_Testdata(t *testing.T) {
	f, err := os.Open("testdata/JOKERS.md")
	require.NoError(t, err)
	defer f.Close()

	entries, stats, err := ParseDocument(f)
	require.NoError(t, err)

	type row struct {
		Name   string
		Rarity catalog.Rarity
		Number int
		Line   int
	}
	var got []row
	for _, e := range entries {
		got = append(got, row{e.Name, e.Rarity, e.Number, e.Line})
	}
	want := []row{
		{"Joker", catalog.RarityCommon, 1, 9},
		{"Greedy Joker", catalog.RarityCommon, 2, 10},
		{"8 Ball", catalog.RarityCommon, 3, 11},
		{"Hack", catalog.RarityCommon, 4, 12},
		{"Hack", catalog.RarityUncommon, 61, 18},
		{"SÃ©ance", catalog.RarityUncommon, 62, 19},
		{"Driver's License", catalog.RarityUncommon, 63, 20},
		{"DNA", catalog.RarityRare, 120, 27},
		{"Perkeo", catalog.RarityLegendary, 146, 33},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 33, stats.Lines)
	assert.Equal(t, 9, stats.Rows)
	assert.Equal(t, 4, stats.Headers)
	assert.Equal(t, 19, stats.Skipped)
	require.Len(t, stats.Malformed, 1)
	assert.Equal(t, 21, stats.Malformed[0].Line)
	assert.True(t, errors.IsMalformedRow(stats.Malformed[0]))
}

func TestParseDocument_Fields(t *testing.T) {
	entries, _ := ParseDocumentString("|  7 |  Blue Joker  | $5 |  +2 Chips per card  |  Start  |\n")
	require.Len(t, entries, 1)
	assert.Equal(t, catalog.Entry{
		Name:   "Blue Joker",
		Rarity: catalog.RarityUnknown,
		Number: 7,
		Cost:   5,
		Effect: "+2 Chips per card",
		Unlock: "Start",
		Line:   1,
	}, entries[0])
}

func TestParseDocument_NoHeadersIsUnknown(t *testing.T) {
	doc := strings.Join([]string{
		"| 1 | Joker | $2 | +4 Mult | Start |",
		"| 2 | Mime | $5 | Retrigger held cards | Start |",
	}, "\n")

	entries, stats := ParseDocumentString(doc)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, catalog.RarityUnknown, e.Rarity, e.Name)
	}
	assert.Zero(t, stats.Headers)
}

func TestParseDocument_SkipsNonRows(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing trailing delimiter", "| 1 | Joker | $2 | +4 Mult | Start"},
		{"missing currency marker", "| 1 | Joker | 2 | +4 Mult | Start |"},
		{"non-numeric ordinal", "| x | Joker | $2 | +4 Mult | Start |"},
		{"too few columns", "| 1 | Joker | $2 | +4 Mult |"},
		{"leading whitespace", " | 1 | Joker | $2 | +4 Mult | Start |"},
		{"table header", "| # | Name | Cost | Effect | Unlock |"},
		{"separator", "|---|---|---|---|---|"},
		{"prose", "Jokers are listed below."},
		{"empty", ""},
		{"ordinal overflow", "| 99999999999999999999 | Joker | $2 | +4 Mult | Start |"},
		{"cost overflow", "| 1 | Joker | $99999999999999999999 | +4 Mult | Start |"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, stats := ParseDocumentString(tt.line)
			assert.Empty(t, entries)
			assert.Zero(t, stats.Rows)
		})
	}
}

func TestParseDocument_MalformedRowDoesNotStopParsing(t *testing.T) {
	doc := strings.Join([]string{
		"# Common Jokers",
		"| 1 | Joker | $2 | +4 Mult | Start",
		"| 2 | Mime | $5 | Retrigger held cards | Start |",
	}, "\n")

	entries, stats := ParseDocumentString(doc)
	require.Len(t, entries, 1)
	assert.Equal(t, "Mime", entries[0].Name)
	assert.Equal(t, 3, entries[0].Line)
	require.Len(t, stats.Malformed, 1)
	assert.Equal(t, 2, stats.Malformed[0].Line)
}

func TestParseDocument_ExtraColumnsIgnored(t *testing.T) {
	entries, _ := ParseDocumentString("| 5 | Mime | $5 | Retrigger | Start | extra |")
	require.Len(t, entries, 1)
	assert.Equal(t, "Start", entries[0].Unlock)
}

func TestParseDocument_CRLF(t *testing.T) {
	entries, _, err := ParseDocument(strings.NewReader("# Rare Jokers\r\n| 1 | Baron | $8 | x1.5 Mult | Start |\r\n"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, catalog.RarityRare, entries[0].Rarity)
	assert.Equal(t, "Baron", entries[0].Name)
}

func TestSectionState_Advance(t *testing.T) {
	tests := []struct {
		line   string
		want   catalog.Rarity
		header bool
	}{
		{"# Common Jokers", catalog.RarityCommon, true},
		{"## Uncommon Jokers (61-124)", catalog.RarityUncommon, true},
		{"### Rare Jokers", catalog.RarityRare, true},
		{"# Legendary Jokers", catalog.RarityLegendary, true},
		{"# Jokers", catalog.RarityUnknown, false},
		{"Common Jokers", catalog.RarityUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			start := sectionState{rarity: catalog.RarityUnknown}
			got, header := start.advance(tt.line)
			assert.Equal(t, tt.want, got.rarity)
			assert.Equal(t, tt.header, header)
			assert.Equal(t, catalog.RarityUnknown, start.rarity, "receiver unchanged")
		})
	}
}

func TestFold_PerSlice(t *testing.T) {
	lines := []string{
		"# Rare Jokers",
		"| 1 | Baron | $8 | x1.5 Mult | Start |",
		"# Common Jokers",
		"| 2 | Mime | $5 | Retrigger | Start |",
	}

	whole := fold(lines)
	tail := fold(lines[2:])

	require.Len(t, whole.entries, 2)
	assert.Equal(t, catalog.RarityRare, whole.entries[0].Rarity)
	assert.Equal(t, catalog.RarityCommon, whole.entries[1].Rarity)

	require.Len(t, tail.entries, 1)
	assert.Equal(t, catalog.RarityCommon, tail.entries[0].Rarity)
	assert.Equal(t, 2, tail.entries[0].Line)
}

func TestParseDocument_LongLineSkipped(t *testing.T) {
	doc := "# Common Jokers\n" + strings.Repeat("x", 2<<20) + "\n| 1 | Joker | $2 | +4 Mult | Start |\n"

	entries, stats, err := ParseDocument(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Joker", entries[0].Name)
	assert.Equal(t, 3, entries[0].Line)
	assert.Equal(t, catalog.RarityCommon, entries[0].Rarity)
	assert.Equal(t, 1, stats.Skipped)
}

func TestParseDocument_NoTrailingNewline(t *testing.T) {
	entries, stats, err := ParseDocument(strings.NewReader("| 1 | Joker | $2 | +4 Mult | Start |"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, stats.Lines)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestParseDocument_ReadError(t *testing.T) {
	_, _, err := ParseDocument(failingReader{})
	require.Error(t, err)
	assert.True(t, errors.IsInputUnavailable(err))
}
