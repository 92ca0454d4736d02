package serebii

import (
	"regexp"
	"strings"

	"dexscrape/internal/components/assert"
	"dexscrape/internal/components/telemetry"
	"dexscrape/internal/dex"
	"dexscrape/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_extract_scope           = "extract.scope"
	report_extract_sibling_text    = "extract.sibling-text"
	report_extract_damage_taken    = "extract.damage-taken"
	report_extract_evolution_chain = "extract.evolution-chain"
	report_extract_moves           = "extract.moves"
	report_extract_ability         = "extract.ability"
	report_extract_base_happiness  = "extract.base-happiness"
)

// Label is a cell located by the text it contains, Sel is nil when no such
// cell exists. Text is kept around so that reports can say what was missing.
type Label struct {
	Text string
	Sel  *goquery.Selection
}

func (l Label) Found() bool {
	return l.Sel != nil && l.Sel.Length() > 0
}

// FindLabel finds the innermost `tag` element under `scope` that contains `text`.
func FindLabel(scope *goquery.Selection, tag, text string) Label {
	sel, ok := htmlutil.FindLabel(scope, tag, text)
	if !ok {
		return Label{Text: text}
	}
	return Label{Text: text, Sel: sel}
}

// Extractor turns located labels into fields. None of its methods fail, a
// missing label or an unexpected layout is reported and an empty value is
// returned so the rest of the record can still be assembled.
type Extractor struct {
	subject string
	tel     telemetry.API
}

// NewExtractor creates an extractor whose reports are tagged with `subject`,
// ex. "gen2 001".
func NewExtractor(subject string, tel telemetry.API) Extractor {
	assert.NotNil(tel)
	return Extractor{subject: subject, tel: tel}
}

// Scope narrows gen1 and gen2 pages to their second centered block, which is
// where the data tables live. Pages without one are searched whole.
func (e Extractor) Scope(doc *goquery.Document) *goquery.Selection {
	centers := doc.Find(`div[align="center"]`)
	if centers.Length() < 2 {
		e.tel.ReportWarning(report_extract_scope, e.subject, centers.Length())
		return doc.Selection
	}
	return centers.Eq(1)
}

// SiblingText collects the text of the cells following the label, used for stat rows.
func (e Extractor) SiblingText(label Label) []string {
	if !label.Found() {
		e.tel.ReportBroken(report_extract_sibling_text, "label not found", e.subject, label.Text)
		return nil
	}
	texts := htmlutil.FollowingSiblings(label.Sel, "td")
	if len(texts) == 0 {
		e.tel.ReportWarning(report_extract_sibling_text, "no sibling text", e.subject, label.Text)
	}
	return texts
}

var attackdexPrefix = regexp.MustCompile(`/attackdex-(xy|dp)/`)

// typeIcon rewrites an attackdex link into the local icon path of its type,
// ex. `/attackdex-dp/fire.shtml` -> `./Images/types/icons/fire.webp`.
func typeIcon(href string) string {
	icon := attackdexPrefix.ReplaceAllString(href, "./Images/types/icons/")
	icon, _, _ = strings.Cut(icon, ".shtml")
	icon += ".webp"
	// the psychic link on the damage tables has a stray "t" at the end of it
	return strings.ReplaceAll(icon, "psychict", "psychic")
}

// DamageTaken reads the table the label is in. Its second row links every
// type, the third row has the multiplier of each type in the same position.
func (e Extractor) DamageTaken(label Label) *dex.DamageProfile {
	if !label.Found() {
		e.tel.ReportBroken(report_extract_damage_taken, "label not found", e.subject, label.Text)
		return nil
	}
	table, ok := htmlutil.Ancestor(label.Sel, "table")
	if !ok {
		e.tel.ReportBroken(report_extract_damage_taken, "no surrounding table", e.subject, label.Text)
		return nil
	}
	rows := table.Find("tr")
	if rows.Length() < 3 {
		e.tel.ReportBroken(report_extract_damage_taken, "table too short", e.subject, rows.Length())
		return nil
	}

	var icons []string
	rows.Eq(1).Find("a").Each(func(_ int, a *goquery.Selection) {
		icons = append(icons, typeIcon(a.AttrOr("href", "")))
	})
	var multipliers []string
	rows.Eq(2).Find("td").Each(func(_ int, td *goquery.Selection) {
		multipliers = append(multipliers, htmlutil.CellText(td))
	})
	if len(icons) != len(multipliers) {
		e.tel.ReportWarning(
			report_extract_damage_taken,
			"type and multiplier count differ",
			e.subject,
			len(icons),
			len(multipliers),
		)
	}

	profile := dex.NewDamageProfile()
	for i, icon := range icons {
		multiplier := ""
		if i < len(multipliers) {
			multiplier = multipliers[i]
		}
		profile.Add(icon, multiplier)
	}
	return profile
}

// EvolutionChain is the image stem of every entity in the label's table, in
// page order, which starts at the earliest stage.
func (e Extractor) EvolutionChain(label Label) []string {
	if !label.Found() {
		e.tel.ReportBroken(report_extract_evolution_chain, "label not found", e.subject, label.Text)
		return nil
	}
	table, ok := htmlutil.Ancestor(label.Sel, "table")
	if !ok {
		e.tel.ReportBroken(report_extract_evolution_chain, "no surrounding table", e.subject, label.Text)
		return nil
	}
	chain := []string{}
	table.Find("td.pkmn a img").Each(func(_ int, img *goquery.Selection) {
		chain = append(chain, htmlutil.LinkStem(img.AttrOr("src", "")))
	})
	return chain
}

// MoveLayout is how a move table lays out its rows.
type MoveLayout int

const (
	// LAYOUT_CLASSIC is the gen1/gen2 layout, a header row followed by one row
	// per move with the source in the first cell and the name in the second.
	LAYOUT_CLASSIC MoveLayout = iota
	// LAYOUT_LEVEL_UP is the gen3 level up and TM/HM layout, every move row is
	// followed by a description row.
	LAYOUT_LEVEL_UP
	// LAYOUT_TUTOR and LAYOUT_EGG are gen3 layouts with the name in the first cell.
	LAYOUT_TUTOR
	LAYOUT_EGG
)

// MoveTable finds the table of moves that a label heads. Egg moves are not
// inside the labelled table, they are in the row after the label's row.
func (e Extractor) MoveTable(label Label, layout MoveLayout) *goquery.Selection {
	if !label.Found() {
		e.tel.ReportBroken(report_extract_moves, "label not found", e.subject, label.Text)
		return nil
	}
	if layout == LAYOUT_EGG {
		row, ok := htmlutil.Ancestor(label.Sel, "tr")
		if !ok || row.Next().Length() == 0 {
			e.tel.ReportBroken(report_extract_moves, "no row after label", e.subject, label.Text)
			return nil
		}
		return row.Next()
	}
	table, ok := htmlutil.Ancestor(label.Sel, "table")
	if !ok {
		e.tel.ReportBroken(report_extract_moves, "no surrounding table", e.subject, label.Text)
		return nil
	}
	return table
}

// Moves reads the moves of a table, a nil table has no moves.
func (e Extractor) Moves(table *goquery.Selection, layout MoveLayout) dex.MoveList {
	moves := dex.NewMoveList()
	if table == nil || table.Length() == 0 {
		return moves
	}

	rows := table.Find("tr")
	switch layout {
	case LAYOUT_CLASSIC:
		rows.Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}
			moves.Add(
				dex.NormalizeMoveSource(htmlutil.CellText(cells.Eq(0))),
				htmlutil.CellText(cells.Eq(1)),
			)
		})
	default:
		// every move row is followed by its description row, so only every
		// other row after the headers is a move
		body := rows.FilterFunction(func(_ int, row *goquery.Selection) bool {
			return !isHeaderRow(row)
		})
		for i := 0; i < body.Length(); i += 2 {
			cells := body.Eq(i).Find("td")
			switch layout {
			case LAYOUT_TUTOR:
				moves.Add(dex.SOURCE_MOVE_TUTOR, htmlutil.CellText(cells.Eq(0)))
			case LAYOUT_EGG:
				moves.Add(dex.SOURCE_EGG_MOVE, htmlutil.CellText(cells.Eq(0)))
			default:
				if cells.Length() < 2 {
					e.tel.ReportWarning(report_extract_moves, "move row without name", e.subject, i)
					continue
				}
				moves.Add(
					dex.NormalizeMoveSource(htmlutil.CellText(cells.Eq(0))),
					htmlutil.CellText(cells.Eq(1)),
				)
			}
		}
	}
	return moves
}

// isHeaderRow reports whether a row only has header cells, either th or the
// site's "fooevo" heading cells.
func isHeaderRow(row *goquery.Selection) bool {
	cells := row.ChildrenFiltered("td")
	if cells.Length() == 0 {
		return true
	}
	return cells.Filter(".fooevo").Length() > 0
}

var abilityRegex = regexp.MustCompile(`\bAbility: (.+)`)

func (e Extractor) Ability(label Label) *string {
	if !label.Found() {
		e.tel.ReportBroken(report_extract_ability, "label not found", e.subject, label.Text)
		return nil
	}
	groups := abilityRegex.FindStringSubmatch(label.Sel.Text())
	if len(groups) < 2 {
		e.tel.ReportWarning(report_extract_ability, "no ability after label", e.subject)
		return nil
	}
	ability := strings.TrimSpace(groups[1])
	return &ability
}

// BaseHappiness is the second cell of the row after the label's row.
func (e Extractor) BaseHappiness(label Label) *string {
	if !label.Found() {
		e.tel.ReportBroken(report_extract_base_happiness, "label not found", e.subject, label.Text)
		return nil
	}
	cell := label.Sel.Parent().Next().Find("td:nth-child(2)").First()
	if cell.Length() == 0 {
		e.tel.ReportWarning(report_extract_base_happiness, "no value cell", e.subject)
		return nil
	}
	happiness := htmlutil.CellText(cell)
	return &happiness
}
