package dex

import (
	"regexp"
	"strings"
)

// MOVE_VERSION is attached to every move. Consumers of the json expect it.
const MOVE_VERSION = "2"

const (
	SOURCE_EGG_MOVE   = "eggMove"
	SOURCE_MOVE_TUTOR = "moveTutor"
	SOURCE_LEVEL_ONE  = "lvl 1"

	// the level column uses an em dash for moves known at level 1
	levelOneDash = "—"
)

// MoveList is three parallel sequences, index i of each describes one move.
// Only Add and Append mutate it so the sequences always have the same length.
type MoveList struct {
	Source  []string `json:"source"`
	Version []string `json:"version"`
	Name    []string `json:"name"`
}

func NewMoveList() MoveList {
	return MoveList{
		Source:  []string{},
		Version: []string{},
		Name:    []string{},
	}
}

func (m *MoveList) Add(source, name string) {
	m.Source = append(m.Source, source)
	m.Version = append(m.Version, MOVE_VERSION)
	m.Name = append(m.Name, name)
}

// Append concatenates `other` onto the end of m, duplicates are kept.
func (m *MoveList) Append(other MoveList) {
	for i := 0; i < other.Len(); i++ {
		m.Source = append(m.Source, other.Source[i])
		m.Version = append(m.Version, other.Version[i])
		m.Name = append(m.Name, other.Name[i])
	}
}

// Len is the number of complete moves.
func (m MoveList) Len() int {
	return min(len(m.Source), len(m.Version), len(m.Name))
}

var numericSource = regexp.MustCompile(`^\d+$`)

// NormalizeMoveSource turns the contents of a level/TM column into a source tag.
//
//	"—"     -> "lvl 1"
//	"12"    -> "lvl 12"
//	"TM06"  -> "TM06"
func NormalizeMoveSource(raw string) string {
	source := strings.TrimSpace(raw)
	if source == levelOneDash {
		return SOURCE_LEVEL_ONE
	}
	if strings.HasPrefix(source, "TM") || strings.HasPrefix(source, "HM") {
		return source
	}
	if numericSource.MatchString(source) {
		return "lvl " + source
	}
	return source
}
