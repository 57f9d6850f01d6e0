package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize_GeneralRule(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two words", "The Joker", "TheJoker"},
		{"lowercase connective", "Hit the Road", "HitTheRoad"},
		{"apostrophe removed", "Hallucination's Dream", "HallucinationsDream"},
		{"exclamation removed", "Wow! Card", "WowCard"},
		{"hyphen splits words", "Half-Joker", "HalfJoker"},
		{"rest lowercased", "DNA", "Dna"},
		{"digit kept", "Cloud 9", "Cloud9"},
		{"leading digit kept", "8 Ball Extra", "8BallExtra"},
		{"extra whitespace", "  Blue \t Joker\n", "BlueJoker"},
		{"empty", "", ""},
		{"only punctuation", "'!'", ""},
		{"accented word", "élan Vital", "ÉlanVital"},
		{"first rune expands", "ßeta Joker", "SsetaJoker"},
		{"information separator splits", "Blue\x1fJoker", "BlueJoker"},
		{"no-break space splits", "Blue\u00a0Joker", "BlueJoker"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonicalize(tt.in))
		})
	}
}

func TestCanonicalize_OverridesWin(t *testing.T) {
	for name, want := range OverrideTable() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, Canonicalize(name))
		})
	}
}

func TestCanonicalize_OverridesDifferFromRule(t *testing.T) {
	// Entries whose general-rule result would not match the engine.
	tests := map[string]string{
		"Joker":            "Joker",
		"8 Ball":           "8Ball",
		"Driver's License": "DriversLicense",
		"SÃ©ance":          "Sã©ance",
	}
	for name, rule := range tests {
		assert.Equal(t, rule, Apply(name), name)
		assert.NotEqual(t, Apply(name), Canonicalize(name), name)
	}
}

func TestCanonicalize_EightBall(t *testing.T) {
	got := Canonicalize("8 Ball")
	assert.Equal(t, "EightBall", got)
	assert.NotContains(t, got, "8")
}

func TestCanonicalize_OverrideIsExact(t *testing.T) {
	assert.Equal(t, "Joker", Canonicalize("joker"))
	assert.Equal(t, "Joker", Canonicalize(" Joker"))
	assert.Equal(t, "TheJoker", Canonicalize("Joker"))
}

func TestCanonicalize_Idempotent(t *testing.T) {
	names := []string{"Joker", "8 Ball", "Mail-In Rebate", "Blueprint", "Driver's License", ""}
	for _, name := range names {
		first := Canonicalize(name)
		second := Canonicalize(name)
		assert.Equal(t, first, second, name)
	}
	// The table is unchanged by canonicalizing.
	assert.Equal(t, OverrideTable(), OverrideTable())
}

func TestOverrideTable_IsCopy(t *testing.T) {
	table := OverrideTable()
	table["Joker"] = "Changed"
	delete(table, "8 Ball")

	id, ok := Override("Joker")
	require.True(t, ok)
	assert.Equal(t, "TheJoker", id)
	_, ok = Override("8 Ball")
	assert.True(t, ok)
}

func TestOverride_Unknown(t *testing.T) {
	_, ok := Override("Blueprint")
	assert.False(t, ok)
}

func TestCanonicalizer(t *testing.T) {
	var zero Canonicalizer
	assert.Equal(t, "TheJoker", zero.Canonicalize("Joker"))
	assert.Equal(t, "Blueprint", Default().Canonicalize("Blueprint"))

	c := Default().WithOverrides(map[string]string{"Blueprint": "BluePrint"})
	assert.Equal(t, "BluePrint", c.Canonicalize("Blueprint"))
	assert.Equal(t, "EightBall", c.Canonicalize("8 Ball"))

	id, ok := c.Lookup("Blueprint")
	assert.True(t, ok)
	assert.Equal(t, "BluePrint", id)
	_, ok = c.Lookup("Brainstorm")
	assert.False(t, ok)

	c2 := c.WithOverrides(map[string]string{"Blueprint": "Copy"})
	assert.Equal(t, "Copy", c2.Canonicalize("Blueprint"))
	assert.Equal(t, "BluePrint", c.Canonicalize("Blueprint"), "receiver unchanged")

	table := c.Overrides()
	assert.Equal(t, "BluePrint", table["Blueprint"])
	assert.Equal(t, "TheJoker", table["Joker"])
}

func TestCanonicalizer_Map(t *testing.T) {
	got := Default().WithOverrides(map[string]string{"Blueprint": "BluePrint"}).Map("Joker", "Blueprint", "Blue Joker")
	assert.Equal(t, []Mapping{
		{Name: "Joker", Identifier: "TheJoker", Override: true},
		{Name: "Blueprint", Identifier: "BluePrint", Override: true},
		{Name: "Blue Joker", Identifier: "BlueJoker"},
	}, got)
	assert.Empty(t, Default().Map())
}

func TestFold(t *testing.T) {
	tests := map[string]string{
		"Séance":           "seance",
		"Driver's License": "driverslicense",
		"Oops! All 6s":     "oopsall6s",
		"EightBall":        "eightball",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Fold(in), in)
	}
}
