package canonical

import "maps"

// Canonicalizer applies the built-in override table plus any extra exact
// mappings supplied by the caller. Extra mappings are consulted first.
// The zero value behaves like Canonicalize.
type Canonicalizer struct {
	extra map[string]string
}

// Default returns a Canonicalizer with no extra mappings.
func Default() Canonicalizer {
	return Canonicalizer{}
}

// WithOverrides returns a copy of c with extra exact mappings added.
// Later calls win over earlier ones for the same key.
func (c Canonicalizer) WithOverrides(extra map[string]string) Canonicalizer {
	merged := make(map[string]string, len(c.extra)+len(extra))
	maps.Copy(merged, c.extra)
	maps.Copy(merged, extra)
	return Canonicalizer{extra: merged}
}

// Canonicalize returns the identifier for name.
func (c Canonicalizer) Canonicalize(name string) string {
	if id, ok := c.extra[name]; ok {
		return id
	}
	return Canonicalize(name)
}

// Lookup reports the override that applies to name, if any, checking extra
// mappings before the built-in table.
func (c Canonicalizer) Lookup(name string) (string, bool) {
	if id, ok := c.extra[name]; ok {
		return id, true
	}
	return Override(name)
}

// Overrides returns the effective override table: built-ins merged with the
// extra mappings.
func (c Canonicalizer) Overrides() map[string]string {
	out := OverrideTable()
	maps.Copy(out, c.extra)
	return out
}

// Mapping is one display name with the identifier it canonicalizes to.
type Mapping struct {
	Name       string `json:"name" yaml:"name"`
	Identifier string `json:"identifier" yaml:"identifier"`
	Override   bool   `json:"override" yaml:"override"`
}

// Map canonicalizes each name in order.
func (c Canonicalizer) Map(names ...string) []Mapping {
	out := make([]Mapping, len(names))
	for i, name := range names {
		_, override := c.Lookup(name)
		out[i] = Mapping{Name: name, Identifier: c.Canonicalize(name), Override: override}
	}
	return out
}
