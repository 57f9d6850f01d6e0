package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var names = []string{"Joker", "Greedy Joker", "Oops! All 6s", "8 Ball", "Mail-In Rebate", "Blueprint"}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType PatternType
		wantType    PatternType
		wantErr     bool
	}{
		{name: "glob", pattern: "*Joker", patternType: Glob, wantType: Glob},
		{name: "regex", pattern: "^Oops.*", patternType: Regex, wantType: Regex},
		{name: "invalid regex", pattern: "(unclosed", patternType: Regex, wantErr: true},
		{name: "invalid glob", pattern: "[unclosed", patternType: Glob, wantErr: true},
		{name: "auto glob", pattern: "*Ball", patternType: Auto, wantType: Glob},
		{name: "auto plain name", pattern: "Blueprint", patternType: Auto, wantType: Glob},
		{name: "auto regex", pattern: `\d Ball`, patternType: Auto, wantType: Regex},
		{name: "unsupported", pattern: "x", patternType: PatternType(9), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.patternType, tt.pattern, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, m.Type())
			assert.Equal(t, tt.pattern, m.Pattern())
		})
	}
}

func TestMatcher_MatchAll(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		opts    *Options
		want    []string
	}{
		{name: "suffix glob", pattern: "*joker", want: []string{"Joker", "Greedy Joker"}},
		{name: "case sensitive glob", pattern: "*joker", opts: &Options{}, want: []string{}},
		{name: "exact name", pattern: "blueprint", want: []string{"Blueprint"}},
		{name: "glob with punctuation", pattern: "Oops! *", want: []string{"Oops! All 6s"}},
		{name: "anchored regex", pattern: `\d Ball`, want: []string{"8 Ball"}},
		{name: "anchored regex rejects partial", pattern: `Ba(ll)`, opts: &Options{Anchored: true}, want: []string{}},
		{name: "unanchored regex", pattern: `(?:Ball|Rebate)`, opts: &Options{}, want: []string{"8 Ball", "Mail-In Rebate"}},
		{name: "alternation stays anchored", pattern: `Joker|Blue.*`, want: []string{"Joker", "Blueprint"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(Auto, tt.pattern, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.MatchAll(names...))
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Regex, "(", nil) })
	assert.NotPanics(t, func() { MustNew(Glob, "*", nil) })
}

func TestMultiMatcher(t *testing.T) {
	mm, err := NewMultiMatcher([]string{"*Joker", "8 *"}, Glob, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, mm.Len())
	assert.True(t, mm.Match("8 Ball"))
	assert.False(t, mm.Match("Blueprint"))
	assert.Equal(t, []string{"Joker", "Greedy Joker", "8 Ball"}, mm.MatchAll(append(names, "Joker")...))

	_, err = NewMultiMatcher([]string{"ok", "["}, Glob, nil)
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	keep, err := Filter()
	require.NoError(t, err)
	assert.Nil(t, keep)

	keep, err = Filter("", "  ")
	require.NoError(t, err)
	assert.Nil(t, keep)

	keep, err = Filter("*ball", "^Mail.*")
	require.NoError(t, err)
	require.NotNil(t, keep)
	assert.True(t, keep("8 Ball"))
	assert.True(t, keep("Mail-In Rebate"))
	assert.False(t, keep("Joker"))

	_, err = Filter("(")
	assert.Error(t, err)
}

func TestPatternType_String(t *testing.T) {
	assert.Equal(t, "glob", Glob.String())
	assert.Equal(t, "regex", Regex.String())
	assert.Equal(t, "auto", Auto.String())
	assert.Equal(t, "unknown", PatternType(42).String())
}
