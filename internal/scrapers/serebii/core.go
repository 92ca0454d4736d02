package serebii

import (
	"errors"
	"regexp"
	"strings"

	"dexscrape/internal/dex"
	"dexscrape/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_core_types       = "core.types"
	report_core_growth_rate = "core.growth-rate"
	report_core_catch_rate  = "core.catch-rate"
)

var errNameNotFound = errors.New("name not found on core page")

// Core holds the fields every generation shares, they come from the core page.
type Core struct {
	Name          string
	Types         []string
	CatchRate     string
	GrowthRate    string
	GrowthFormula *string
}

// Apply copies the core fields onto `entity`, deriving the type colors and
// icon paths from the types.
func (c Core) Apply(entity *dex.Entity) {
	entity.Name = c.Name
	entity.CatchRate = c.CatchRate
	entity.GrowthRate = c.GrowthRate
	entity.GrowthFormula = c.GrowthFormula

	entity.TypeColor = []*string{nil, nil}
	entity.TypeLink = make([]string, 0, len(c.Types))
	entity.Type1 = nil
	entity.Type2 = nil
	for i, t := range c.Types {
		if i >= len(entity.TypeColor) {
			break
		}
		slug := t
		entity.TypeColor[i] = dex.TypeColor(slug)
		entity.TypeLink = append(entity.TypeLink, dex.TypeIconPath(slug))
		if i == 0 {
			entity.Type1 = &slug
		} else {
			entity.Type2 = &slug
		}
	}
}

// ParseCore reads the core page. Only a missing name is an error, every
// other field degrades to empty.
func ParseCore(doc *goquery.Document, e Extractor) (Core, error) {
	centers := doc.Find(`div[align="center"]`)

	name := htmlutil.CellText(centers.Find(".dextable .fooinfo").First())
	if name == "" {
		return Core{}, errNameNotFound
	}

	core := Core{
		Name:  name,
		Types: parseTypes(centers, e),
	}
	core.GrowthRate = parseGrowthRate(doc, e)
	core.GrowthFormula = dex.GrowthFormula(core.GrowthRate)
	core.CatchRate = parseCatchRate(doc, e)
	return core, nil
}

// parseTypes resolves the first two type links, links that are not to a type
// (ex. to the egg group) are skipped.
func parseTypes(centers *goquery.Selection, e Extractor) []string {
	var types []string
	centers.Find(`.dextable td.fooinfo a[href*="pokedex-dp"]`).Each(func(_ int, a *goquery.Selection) {
		if len(types) == 2 {
			return
		}
		stem := htmlutil.LinkStem(a.AttrOr("href", ""))
		if dex.IsType(stem) {
			types = append(types, stem)
		}
	})
	if len(types) == 0 {
		e.tel.ReportWarning(report_core_types, "no types found", e.subject)
	}
	return types
}

// parseGrowthRate reads the cell under the "Experience Growth" label, which
// reads like "1,059,860 Points Medium Slow". The category is whatever comes
// after the last "Points".
func parseGrowthRate(doc *goquery.Document, e Extractor) string {
	label := FindLabel(doc.Selection, "tr", "Experience Growth")
	if !label.Found() {
		e.tel.ReportBroken(report_core_growth_rate, "label not found", e.subject)
		return ""
	}
	cell := label.Sel.Next().Find("td.fooinfo").First()
	if cell.Length() == 0 {
		e.tel.ReportWarning(report_core_growth_rate, "no value cell", e.subject)
		return ""
	}
	text := cell.Text()
	idx := strings.LastIndex(text, "Points")
	if idx >= 0 {
		text = text[idx+len("Points"):]
	}
	return htmlutil.CleanText(text)
}

var catchRateRegex = regexp.MustCompile(`\d+(\.\d+)?`)

// parseCatchRate reads the 4th cell of the first row after the
// "Capture Rate" header cell.
func parseCatchRate(doc *goquery.Document, e Extractor) string {
	label, ok := htmlutil.FindOwnTextLabel(doc.Selection, "td", "Capture Rate")
	if !ok {
		e.tel.ReportBroken(report_core_catch_rate, "label not found", e.subject)
		return ""
	}
	rowNode := htmlutil.Following(label.Get(0), "tr")
	if rowNode == nil {
		e.tel.ReportWarning(report_core_catch_rate, "no row after label", e.subject)
		return ""
	}
	row := doc.FindNodes(rowNode)
	text := htmlutil.CellText(htmlutil.ChildCells(row).Eq(3))
	if text == "" {
		e.tel.ReportWarning(report_core_catch_rate, "empty value cell", e.subject)
		return ""
	}
	if match := catchRateRegex.FindString(text); match != "" {
		return match
	}
	return text
}
