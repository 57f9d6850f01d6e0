package catalog

// Rarity is the document section a joker row appeared under.
type Rarity string

// String returns the string representation of a Rarity.
func (r Rarity) String() string {
	return string(r)
}

// Rarity tiers, in document order.
const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityLegendary Rarity = "Legendary"
	RarityUnknown   Rarity = "Unknown" // No section header preceded the row
)

// Rarities returns the known tiers in document order, excluding RarityUnknown.
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityLegendary}
}

// ParseRarity converts a section name to a Rarity.
// Unrecognized names map to RarityUnknown.
func ParseRarity(s string) Rarity {
	for _, r := range Rarities() {
		if string(r) == s {
			return r
		}
	}
	return RarityUnknown
}
