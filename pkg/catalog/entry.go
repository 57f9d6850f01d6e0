// Package catalog defines the records exchanged between the extractor and the
// reconciler: document entries and the implemented identifier set.
package catalog

import "fmt"

// Entry is one joker row from the reference document.
// Entries are values; nothing mutates them after extraction.
type Entry struct {
	Name   string `json:"name" yaml:"name"`                         // Display name as written in the document
	Rarity Rarity `json:"rarity" yaml:"rarity"`                     // Section the row appeared under
	Number int    `json:"number" yaml:"number"`                     // Declared ordinal, not unique
	Cost   int    `json:"cost" yaml:"cost"`                         // Shop cost in dollars
	Effect string `json:"effect,omitempty" yaml:"effect,omitempty"` // Effect text
	Unlock string `json:"unlock,omitempty" yaml:"unlock,omitempty"` // Unlock condition
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`     // 1-based line in the document
}

// String returns a short human-readable location for the entry.
func (e Entry) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d: %s section, #%d, $%d)", e.Name, e.Line, e.Rarity, e.Number, e.Cost)
	}
	return fmt.Sprintf("%s (%s section, #%d, $%d)", e.Name, e.Rarity, e.Number, e.Cost)
}
