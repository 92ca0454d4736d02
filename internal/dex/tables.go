package dex

import (
	"fmt"
	"strings"
)

var validTypes = map[string]struct{}{
	"fire": {}, "water": {}, "grass": {}, "bug": {}, "flying": {}, "electric": {},
	"poison": {}, "ground": {}, "rock": {}, "fairy": {}, "steel": {}, "ghost": {},
	"normal": {}, "fighting": {}, "psychic": {}, "ice": {}, "dragon": {}, "dark": {},
}

// IsType reports whether `slug` names a type, case insensitive.
func IsType(slug string) bool {
	_, ok := validTypes[strings.ToLower(slug)]
	return ok
}

var typeColors = map[string]string{
	"Normal":   "#A8A77A",
	"Fire":     "#EE8130",
	"Water":    "#6390F0",
	"Electric": "#F7D02C",
	"Grass":    "#7AC74C",
	"Ice":      "#96D9D6",
	"Fighting": "#C22E28",
	"Poison":   "#A33EA1",
	"Ground":   "#E2BF65",
	"Flying":   "#A98FF3",
	"Psychic":  "#F95587",
	"Bug":      "#A6B91A",
	"Rock":     "#B6A136",
	"Ghost":    "#735797",
	"Dragon":   "#6F35FC",
	"Dark":     "#705848",
	"Steel":    "#B8B8D0",
}

// Capitalize upper cases the first letter and lower cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// TypeColor is the display color of a type, nil if it has none.
func TypeColor(slug string) *string {
	color, ok := typeColors[Capitalize(slug)]
	if !ok {
		return nil
	}
	return &color
}

// TypeIconPath is where the frontend keeps the icon of a type.
func TypeIconPath(slug string) string {
	return fmt.Sprintf("./Images/types/icons/%s.webp", Capitalize(slug))
}

const (
	GROWTH_SLOW        = "Slow"
	GROWTH_MEDIUM_SLOW = "Medium Slow"
	GROWTH_MEDIUM_FAST = "Medium Fast"
	GROWTH_FAST        = "Fast"
)

var growthFormulas = map[string]string{
	GROWTH_SLOW:        "(5 * x**3) / 4",
	GROWTH_MEDIUM_SLOW: "(6 * x**3) / 5 - 15 * x**2 + 100 * x - 140",
	GROWTH_MEDIUM_FAST: "x**3",
	GROWTH_FAST:        "(4 * x**3) / 5",
}

// GrowthFormula is the experience formula of a growth rate category, nil for
// unknown categories.
func GrowthFormula(rate string) *string {
	formula, ok := growthFormulas[rate]
	if !ok {
		return nil
	}
	return &formula
}
