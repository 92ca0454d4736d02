// Package dex holds the records produced by a scrape and their persisted json shape.
package dex

import "fmt"

// Gen1Limit and Gen2Limit are the first national dex ids that do not exist in
// those generations.
const (
	Gen1Limit = 152
	Gen2Limit = 252
)

// Entity is a single pokemon, keyed by Name in the persisted document.
type Entity struct {
	Name             string      `json:"-"`
	NationalDexEntry string      `json:"national_dex_entry"`
	TypeColor        []*string   `json:"type_color"`
	TypeLink         []string    `json:"type_link"`
	Type1            *string     `json:"type1"`
	Type2            *string     `json:"type2"`
	CatchRate        string      `json:"catch_rate"`
	ExpYield         *int        `json:"expYield,omitempty"`
	GrowthFormula    *string     `json:"growth_formula"`
	GrowthRate       string      `json:"growth_rate"`
	Gen1             *Gen1Record `json:"gen1"`
	Gen2             *Gen2Record `json:"gen2"`
	Gen3             *Gen3Record `json:"gen3"`
}

// FormatDexEntry zero pads an id to 3 digits.
func FormatDexEntry(id int) string {
	return fmt.Sprintf("%03d", id)
}

type Gen1Record struct {
	EvolutionLine []string       `json:"evolutionLine"`
	Stats         Gen1Stats      `json:"stats"`
	DamageTaken   *DamageProfile `json:"damageTaken"`
	Moves         MoveList       `json:"moves"`
}

type Gen2Record struct {
	EvolutionLine []string       `json:"evolutionLine"`
	Stats         Stats          `json:"stats"`
	DamageTaken   *DamageProfile `json:"damageTaken"`
	Moves         MoveList       `json:"moves"`

	// not part of the persisted shape, kept for the result store
	BaseHappiness *string `json:"-"`
}

type Gen3Record struct {
	Ability     *string        `json:"ability"`
	Stats       Stats          `json:"stats"`
	DamageTaken *DamageProfile `json:"damageTaken"`
	Moves       MoveList       `json:"moves"`
}
