package dex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// StatValue is a base stat. Older output stored stats as strings, so it decodes
// from both json strings and numbers.
type StatValue int

var leadingInt = regexp.MustCompile(`^\s*[+-]?\d+`)

// ParseStat reads the leading integer of `s`, anything unparseable is 0.
func ParseStat(s string) StatValue {
	match := leadingInt.FindString(s)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(match))
	if err != nil {
		return 0
	}
	return StatValue(n)
}

func (v *StatValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*v = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		if err != nil {
			return err
		}
		*v = ParseStat(s)
		return nil
	}
	var n json.Number
	err := json.Unmarshal(data, &n)
	if err != nil {
		return fmt.Errorf("stat value: %w", err)
	}
	*v = ParseStat(n.String())
	return nil
}

// Gen1Stats has no split special.
type Gen1Stats struct {
	HP      StatValue `json:"HP"`
	Attack  StatValue `json:"Attack"`
	Defense StatValue `json:"Defense"`
	Special StatValue `json:"Special"`
	Speed   StatValue `json:"Speed"`
}

// Stats is the stat block of generation 2 and onward.
type Stats struct {
	HP             StatValue `json:"HP"`
	Attack         StatValue `json:"Attack"`
	Defense        StatValue `json:"Defense"`
	SpecialAttack  StatValue `json:"SpecialAttack"`
	SpecialDefense StatValue `json:"SpecialDefense"`
	Speed          StatValue `json:"Speed"`
}

func statAt(values []string, i int) StatValue {
	if i >= len(values) {
		return 0
	}
	return ParseStat(values[i])
}

// NewGen1Stats builds a stat block from the cells following a base stats label,
// in page order. Missing cells are 0.
func NewGen1Stats(values []string) Gen1Stats {
	return Gen1Stats{
		HP:      statAt(values, 0),
		Attack:  statAt(values, 1),
		Defense: statAt(values, 2),
		Special: statAt(values, 3),
		Speed:   statAt(values, 4),
	}
}

// NewStats is NewGen1Stats for the 6 stat layout.
func NewStats(values []string) Stats {
	return Stats{
		HP:             statAt(values, 0),
		Attack:         statAt(values, 1),
		Defense:        statAt(values, 2),
		SpecialAttack:  statAt(values, 3),
		SpecialDefense: statAt(values, 4),
		Speed:          statAt(values, 5),
	}
}
