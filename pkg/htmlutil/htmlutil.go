package htmlutil

import (
	"bytes"
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// OwnText returns only the text nodes that are direct children of `node`.
func OwnText(node *html.Node) string {
	var buffer bytes.Buffer
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			buffer.WriteString(child.Data)
		}
	}
	return buffer.String()
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText removes non-printable characters, trims and collapses inner whitespace.
func CleanText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}

// CellText is the trimmed text of a selection.
func CellText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}

// FindLabel finds the innermost `tag` element under `scope` whose text contains `text`.
// Layout tables on the pages nest cells inside cells, so an outer cell "contains" every
// label inside of it, the innermost match is the actual label.
func FindLabel(scope *goquery.Selection, tag, text string) (*goquery.Selection, bool) {
	if scope == nil {
		return nil, false
	}
	matches := scope.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), text)
	})
	if matches.Length() == 0 {
		return nil, false
	}
	innermost := matches.FilterFunction(func(_ int, s *goquery.Selection) bool {
		nested := s.Find(tag).FilterFunction(func(_ int, inner *goquery.Selection) bool {
			return strings.Contains(inner.Text(), text)
		})
		return nested.Length() == 0
	})
	if innermost.Length() == 0 {
		return matches.Last(), true
	}
	return innermost.First(), true
}

// FindOwnTextLabel is FindLabel, but only text directly inside the element counts.
func FindOwnTextLabel(scope *goquery.Selection, tag, text string) (*goquery.Selection, bool) {
	if scope == nil {
		return nil, false
	}
	matches := scope.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(OwnText(s.Get(0)), text)
	})
	if matches.Length() == 0 {
		return nil, false
	}
	return matches.First(), true
}

// FollowingSiblings collects the trimmed text of every sibling after `label`
// until the first sibling that is not a `tag` element.
func FollowingSiblings(label *goquery.Selection, tag string) []string {
	var texts []string
	for current := label.Next(); current.Length() > 0; current = current.Next() {
		if goquery.NodeName(current) != tag {
			break
		}
		texts = append(texts, CellText(current))
	}
	return texts
}

// Ancestor returns the closest ancestor of `sel` (excluding itself) matching `selector`.
func Ancestor(sel *goquery.Selection, selector string) (*goquery.Selection, bool) {
	if sel == nil {
		return nil, false
	}
	found := sel.ParentsFiltered(selector).First()
	return found, found.Length() > 0
}

func findFirst(node *html.Node, tag string) *html.Node {
	if node.Type == html.ElementNode && node.Data == tag {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		found := findFirst(child, tag)
		if found != nil {
			return found
		}
	}
	return nil
}

// Following returns the first `tag` element after `node` in document order,
// not counting the descendants of `node` (xpath's following axis).
func Following(node *html.Node, tag string) *html.Node {
	for current := node; current != nil; current = current.Parent {
		for sibling := current.NextSibling; sibling != nil; sibling = sibling.NextSibling {
			found := findFirst(sibling, tag)
			if found != nil {
				return found
			}
		}
	}
	return nil
}

// ChildCells returns the direct `td` children of a row.
func ChildCells(row *goquery.Selection) *goquery.Selection {
	return row.ChildrenFiltered("td")
}

// LinkStem returns the last path segment of a link up until its first dot,
// ex. `/pokedex-dp/grass.shtml` -> `grass`.
func LinkStem(link string) string {
	base := path.Base(strings.TrimRight(link, "/"))
	if base == "." || base == "/" {
		return ""
	}
	stem, _, _ := strings.Cut(base, ".")
	return stem
}
