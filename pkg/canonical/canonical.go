// Package canonical maps human-written joker display names to the identifier
// form used by the engine's registry.
//
// A name is first looked up in a fixed override table. Names without an
// override go through the general rule: apostrophes and exclamation marks are
// removed, hyphens become spaces, and the remaining words are capitalized and
// concatenated. Digits are kept as literal characters, so "8 Ball" needs an
// override to reach "EightBall".
//
// Canonicalize is pure and safe for concurrent use.
package canonical

import (
	"maps"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// overrides holds the exact display names the general rule gets wrong.
var overrides = map[string]string{
	"Joker":            "TheJoker", // bare "Joker" would collide with the category name
	"Oops! All 6s":     "OopsAll6s",
	"8 Ball":           "EightBall",
	"Mail-In Rebate":   "MailInRebate",
	"Riff-Raff":        "RiffRaff",
	"Walkie Talkie":    "WalkieTalkie",
	"SÃ©ance":          "Seance", // UTF-8 decoded as Latin-1 upstream
	"Séance":           "Seance",
	"Sock and Buskin":  "SockAndBuskin",
	"Driver's License": "DriverLicense",
}

var stripper = strings.NewReplacer("'", "", "!", "", "-", " ")

// Override returns the override identifier for name, if one exists.
// The lookup is exact: no trimming and no case folding.
func Override(name string) (string, bool) {
	id, ok := overrides[name]
	return id, ok
}

// OverrideTable returns a copy of the built-in override table.
func OverrideTable() map[string]string {
	return maps.Clone(overrides)
}

// Canonicalize returns the identifier for a display name using the built-in
// override table and the general rule.
func Canonicalize(name string) string {
	if id, ok := overrides[name]; ok {
		return id
	}
	return apply(name)
}

// Apply runs only the general rule, ignoring overrides.
func Apply(name string) string {
	return apply(name)
}

func apply(name string) string {
	words := strings.FieldsFunc(stripper.Replace(name), isSpace)
	var b strings.Builder
	b.Grow(len(name))
	for _, w := range words {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// isSpace separates words. The ASCII information separators U+001C to U+001F
// count as whitespace alongside the Unicode White_Space set.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// capitalize title-cases the first rune and lowercases the rest using the
// full case mappings, so a rune may expand ("ß" becomes "Ss").
func capitalize(word string) string {
	lower := cases.Lower(language.Und)
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError && size <= 1 {
		return lower.String(word)
	}
	return cases.Title(language.Und).String(word[:size]) + lower.String(word[size:])
}
