package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const nestedPage = `
<html><body>
<table id="layout"><tr><td>
	<table class="dextable" id="stats">
		<tr><td class="fooevo">Base Stats - Total: 318</td><td>45</td><td>49</td><td>49</td><td>65</td><td>45</td><p>stray</p><td>99</td></tr>
	</table>
	<table class="dextable" id="capture">
		<tr><td>Gender</td><td>Capture Rate <b>bold</b></td></tr>
		<tr><td>a</td><td>b</td><td>c</td><td>45</td></tr>
	</table>
</td></tr></table>
</body></html>`

func mustDoc(t *testing.T, src string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestFindLabelInnermost(t *testing.T) {
	doc := mustDoc(t, nestedPage)

	label, ok := FindLabel(doc.Selection, "td", "Base Stats - Total")
	require.True(t, ok)
	require.Equal(t, "fooevo", label.AttrOr("class", ""))

	_, ok = FindLabel(doc.Selection, "td", "Not On The Page")
	require.False(t, ok)

	_, ok = FindLabel(nil, "td", "Base Stats")
	require.False(t, ok)
}

func TestFollowingSiblings(t *testing.T) {
	doc := mustDoc(t, nestedPage)
	label, ok := FindLabel(doc.Selection, "td", "Base Stats - Total")
	require.True(t, ok)

	// the parser moves the stray <p> out of the table, so every cell is collected
	require.Equal(t, []string{"45", "49", "49", "65", "45", "99"}, FollowingSiblings(label, "td"))
}

func TestFollowingSiblingsStopsAtOtherElement(t *testing.T) {
	doc := mustDoc(t, `<div><span id="l">label</span><span>1</span><b>x</b><span>2</span></div>`)
	label := doc.Find("#l")
	require.Equal(t, []string{"1"}, FollowingSiblings(label, "span"))
}

func TestFollowing(t *testing.T) {
	doc := mustDoc(t, nestedPage)
	label, ok := FindOwnTextLabel(doc.Selection, "td", "Capture Rate")
	require.True(t, ok)

	row := Following(label.Get(0), "tr")
	require.NotNil(t, row)
	cells := ChildCells(goquery.NewDocumentFromNode(row).Selection)
	require.Equal(t, 4, cells.Length())
	require.Equal(t, "45", CellText(cells.Eq(3)))
}

func TestAncestor(t *testing.T) {
	doc := mustDoc(t, nestedPage)
	label, ok := FindLabel(doc.Selection, "td", "Base Stats - Total")
	require.True(t, ok)

	table, ok := Ancestor(label, "table")
	require.True(t, ok)
	require.Equal(t, "stats", table.AttrOr("id", ""))

	_, ok = Ancestor(label, "form")
	require.False(t, ok)
}

func TestLinkStem(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{input: "/pokedex-dp/grass.shtml", expected: "grass"},
		{input: "/pokedex-rs/small/001.png", expected: "001"},
		{input: "bulbasaur.tar.gz", expected: "bulbasaur"},
		{input: "", expected: ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expected, LinkStem(test.input))
	}
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "Medium Slow", CleanText("  Medium \n\t Slow\u0000 "))
}
