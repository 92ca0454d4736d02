package serebii

import (
	"dexscrape/internal/dex"

	"github.com/PuerkitoBio/goquery"
)

// ParseGen1 reads a gen1 page.
func ParseGen1(doc *goquery.Document, e Extractor) *dex.Gen1Record {
	scope := e.Scope(doc)

	levelUp := e.Moves(e.MoveTable(FindLabel(scope, "td", "Generation I Level Up"), LAYOUT_CLASSIC), LAYOUT_CLASSIC)
	machines := e.Moves(e.MoveTable(FindLabel(scope, "td", "TM & HM Attacks"), LAYOUT_CLASSIC), LAYOUT_CLASSIC)

	moves := dex.NewMoveList()
	moves.Append(levelUp)
	moves.Append(machines)

	return &dex.Gen1Record{
		EvolutionLine: e.EvolutionChain(FindLabel(scope, "td", "Evolutionary Chain")),
		Stats:         dex.NewGen1Stats(e.SiblingText(FindLabel(scope, "td", "Base Stats - Total"))),
		DamageTaken:   e.DamageTaken(FindLabel(scope, "td", "Damage Taken")),
		Moves:         moves,
	}
}

// ParseGen2 reads a gen2 page, it has the gen1 layout with split special stats
// and base happiness.
func ParseGen2(doc *goquery.Document, e Extractor) *dex.Gen2Record {
	scope := e.Scope(doc)

	levelUp := e.Moves(e.MoveTable(FindLabel(scope, "td", "Generation II Level Up"), LAYOUT_CLASSIC), LAYOUT_CLASSIC)
	machines := e.Moves(e.MoveTable(FindLabel(scope, "td", "TM & HM Attacks"), LAYOUT_CLASSIC), LAYOUT_CLASSIC)

	moves := dex.NewMoveList()
	moves.Append(levelUp)
	moves.Append(machines)

	return &dex.Gen2Record{
		EvolutionLine: e.EvolutionChain(FindLabel(scope, "td", "Evolutionary Chain")),
		Stats:         dex.NewStats(e.SiblingText(FindLabel(scope, "td", "Base Stats - Total"))),
		DamageTaken:   e.DamageTaken(FindLabel(scope, "td", "Damage Taken")),
		Moves:         moves,
		BaseHappiness: e.BaseHappiness(FindLabel(scope, "td", "Base Happiness")),
	}
}

// ParseGen3 reads a gen3 (fire red / leaf green) page. These pages are not
// split into centered blocks so the whole document is searched.
func ParseGen3(doc *goquery.Document, e Extractor) *dex.Gen3Record {
	scope := doc.Selection

	levelUp := e.Moves(e.MoveTable(FindLabel(scope, "th", "Fire Red/Leaf Green Level Up"), LAYOUT_LEVEL_UP), LAYOUT_LEVEL_UP)
	machines := e.Moves(e.MoveTable(FindLabel(scope, "th", "TM & HM Attacks"), LAYOUT_LEVEL_UP), LAYOUT_LEVEL_UP)
	tutor := e.Moves(e.MoveTable(FindLabel(scope, "td", "Fire Red/Leaf Green/Emerald Tutor Attacks"), LAYOUT_TUTOR), LAYOUT_TUTOR)
	egg := e.Moves(e.MoveTable(FindLabel(scope, "td", "Egg Moves"), LAYOUT_EGG), LAYOUT_EGG)

	moves := dex.NewMoveList()
	moves.Append(levelUp)
	moves.Append(machines)
	moves.Append(tutor)
	moves.Append(egg)

	return &dex.Gen3Record{
		Ability:     e.Ability(FindLabel(scope, "td", "Ability:")),
		Stats:       dex.NewStats(e.SiblingText(FindLabel(scope, "td", "Base Stats"))),
		DamageTaken: e.DamageTaken(FindLabel(scope, "td", "Damage Taken")),
		Moves:       moves,
	}
}
