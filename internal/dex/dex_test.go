package dex

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func str(s string) *string {
	return &s
}

func bulbasaur() Entity {
	damage := NewDamageProfile()
	damage.Add("./Images/types/icons/fire.webp", "*2")
	damage.Add("./Images/types/icons/water.webp", "*0.5")
	damage.Add("./Images/types/icons/grass.webp", "*0.25")

	moves := NewMoveList()
	moves.Add("lvl 1", "Tackle")
	moves.Add("TM03", "Swords Dance")

	return Entity{
		Name:             "Bulbasaur",
		NationalDexEntry: FormatDexEntry(1),
		TypeColor:        []*string{TypeColor("grass"), TypeColor("poison")},
		TypeLink:         []string{TypeIconPath("grass"), TypeIconPath("poison")},
		Type1:            str("grass"),
		Type2:            str("poison"),
		CatchRate:        "45",
		GrowthFormula:    GrowthFormula(GROWTH_MEDIUM_SLOW),
		GrowthRate:       GROWTH_MEDIUM_SLOW,
		Gen1: &Gen1Record{
			EvolutionLine: []string{"001", "002", "003"},
			Stats:         NewGen1Stats([]string{"45", "49", "49", "65", "45"}),
			DamageTaken:   damage,
			Moves:         moves,
		},
		Gen2: &Gen2Record{
			EvolutionLine: []string{"001", "002", "003"},
			Stats:         NewStats([]string{"45", "49", "49", "65", "65", "45"}),
			DamageTaken:   damage,
			Moves:         moves,
		},
		Gen3: &Gen3Record{
			Ability:     str("Overgrow"),
			Stats:       NewStats([]string{"45", "49", "49", "65", "65", "45"}),
			DamageTaken: damage,
			Moves:       moves,
		},
	}
}

func TestFormatDexEntry(t *testing.T) {
	require.Equal(t, "001", FormatDexEntry(1))
	require.Equal(t, "200", FormatDexEntry(200))
	require.Equal(t, "386", FormatDexEntry(386))
}

func TestNormalizeMoveSource(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "—", expected: "lvl 1"},
		{input: " — ", expected: "lvl 1"},
		{input: "7", expected: "lvl 7"},
		{input: "07", expected: "lvl 07"},
		{input: "TM06", expected: "TM06"},
		{input: "HM01", expected: "HM01"},
		{input: "Start", expected: "Start"},
		{input: "", expected: ""},
	}
	for _, row := range table {
		require.Equal(t, row.expected, NormalizeMoveSource(row.input), row.input)
	}
}

func TestNormalizeMoveSourceNumeric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.StringMatching(`[0-9]{1,3}`).Draw(t, "raw")
		require.Equal(t, "lvl "+raw, NormalizeMoveSource(raw))
	})
}

func TestNormalizeMoveSourceMachines(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.StringMatching(`(TM|HM)[0-9]{2}`).Draw(t, "raw")
		require.Equal(t, raw, NormalizeMoveSource(raw))
	})
}

func TestMoveListStaysAligned(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lists := rapid.SliceOfN(rapid.SliceOf(rapid.String()), 0, 4).Draw(t, "lists")

		merged := NewMoveList()
		total := 0
		for _, names := range lists {
			part := NewMoveList()
			for _, name := range names {
				part.Add(NormalizeMoveSource(name), name)
			}
			merged.Append(part)
			total += len(names)
		}

		require.Equal(t, total, merged.Len())
		require.Len(t, merged.Source, total)
		require.Len(t, merged.Version, total)
		require.Len(t, merged.Name, total)
		for _, v := range merged.Version {
			require.Equal(t, MOVE_VERSION, v)
		}
	})
}

func TestMoveListAppendKeepsOrder(t *testing.T) {
	levelUp := NewMoveList()
	levelUp.Add("lvl 1", "Tackle")
	tm := NewMoveList()
	tm.Add("TM06", "Toxic")
	tm.Add("lvl 1", "Tackle")

	merged := NewMoveList()
	merged.Append(levelUp)
	merged.Append(tm)

	require.Equal(t, []string{"Tackle", "Toxic", "Tackle"}, merged.Name)
	require.Equal(t, []string{"lvl 1", "TM06", "lvl 1"}, merged.Source)
}

func TestDamageProfileBuckets(t *testing.T) {
	table := []struct {
		multiplier string
		bucket     func(d *DamageProfile) []string
	}{
		{multiplier: "*4", bucket: func(d *DamageProfile) []string { return d.FourTimesWeakness }},
		{multiplier: "*2", bucket: func(d *DamageProfile) []string { return d.TwoTimesWeakness }},
		{multiplier: "*1", bucket: func(d *DamageProfile) []string { return d.NeutralWeakness }},
		{multiplier: "*0.5", bucket: func(d *DamageProfile) []string { return d.HalfDamage }},
		{multiplier: "*0.25", bucket: func(d *DamageProfile) []string { return d.QuarterDamage }},
		{multiplier: "*0", bucket: func(d *DamageProfile) []string { return d.ResistedDamage }},
		{multiplier: "", bucket: func(d *DamageProfile) []string { return d.ResistedDamage }},
	}
	for _, row := range table {
		d := NewDamageProfile()
		d.Add("icon", row.multiplier)
		require.Equal(t, []string{"icon"}, row.bucket(d), row.multiplier)
		require.Equal(t, 1, d.Len())
	}
}

func TestDamageProfileEachTypeOnce(t *testing.T) {
	multipliers := []string{"*4", "*2", "*1", "*0.5", "*0.25", "*0", "?"}
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 18).Draw(t, "n")
		d := NewDamageProfile()
		for i := 0; i < n; i++ {
			d.Add(strings.Repeat("t", i+1), rapid.SampledFrom(multipliers).Draw(t, "multiplier"))
		}

		seen := map[string]int{}
		for _, bucket := range d.Buckets() {
			for _, icon := range bucket {
				seen[icon]++
			}
		}
		require.Len(t, seen, n)
		for _, count := range seen {
			require.Equal(t, 1, count)
		}
	})
}

func TestStatBlockKeys(t *testing.T) {
	entity := bulbasaur()

	gen1, err := json.Marshal(entity.Gen1.Stats)
	require.NoError(t, err)
	var gen1Keys map[string]int
	require.NoError(t, json.Unmarshal(gen1, &gen1Keys))
	require.Equal(t, map[string]int{"HP": 45, "Attack": 49, "Defense": 49, "Special": 65, "Speed": 45}, gen1Keys)

	gen2, err := json.Marshal(entity.Gen2.Stats)
	require.NoError(t, err)
	var gen2Keys map[string]int
	require.NoError(t, json.Unmarshal(gen2, &gen2Keys))
	require.Len(t, gen2Keys, 6)
	for _, key := range []string{"HP", "Attack", "Defense", "SpecialAttack", "SpecialDefense", "Speed"} {
		require.Contains(t, gen2Keys, key)
	}
}

func TestStatsFromShortRow(t *testing.T) {
	stats := NewStats([]string{"45", "49"})
	require.Equal(t, Stats{HP: 45, Attack: 49}, stats)
	require.Equal(t, Gen1Stats{}, NewGen1Stats(nil))
}

func TestStatValueDecoding(t *testing.T) {
	table := []struct {
		input    string
		expected StatValue
	}{
		{input: `45`, expected: 45},
		{input: `"45"`, expected: 45},
		{input: `" 45 "`, expected: 45},
		{input: `"12abc"`, expected: 12},
		{input: `"abc"`, expected: 0},
		{input: `""`, expected: 0},
		{input: `null`, expected: 0},
	}
	for _, row := range table {
		var v StatValue
		require.NoError(t, json.Unmarshal([]byte(row.input), &v), row.input)
		require.Equal(t, row.expected, v, row.input)
	}
}

func TestTables(t *testing.T) {
	require.True(t, IsType("Grass"))
	require.True(t, IsType("fairy"))
	require.False(t, IsType("pokedex"))

	require.Equal(t, "#7AC74C", *TypeColor("grass"))
	require.Nil(t, TypeColor("fairy"))
	require.Equal(t, "./Images/types/icons/Psychic.webp", TypeIconPath("psychic"))

	require.Equal(t, "x**3", *GrowthFormula("Medium Fast"))
	require.Nil(t, GrowthFormula("Erratic"))
}

func TestPokedexShape(t *testing.T) {
	entity := bulbasaur()
	entity.Gen2 = nil

	var buff bytes.Buffer
	require.NoError(t, Encode(&buff, Document{NewPokedex(entity)}))

	var raw []map[string]map[string]any
	require.NoError(t, json.Unmarshal(buff.Bytes(), &raw))
	require.Len(t, raw, 1)
	require.Len(t, raw[0], 1)

	record := raw[0]["Bulbasaur"]
	require.Equal(t, "001", record["national_dex_entry"])
	require.Nil(t, record["gen2"])
	require.NotContains(t, record, "expYield")
	require.NotContains(t, record, "Name")

	out := buff.String()
	require.Less(t, strings.Index(out, `"catch_rate"`), strings.Index(out, `"growth_formula"`))
	require.Less(t, strings.Index(out, `"gen1"`), strings.Index(out, `"gen3"`))
}

func TestPokedexKeepsEntityOrder(t *testing.T) {
	names := []string{"Zubat", "Abra", "Mew"}
	var entities []Entity
	for _, name := range names {
		entities = append(entities, Entity{Name: name})
	}
	entities = append(entities, Entity{Name: "Abra", CatchRate: "200"})

	out, err := json.Marshal(NewPokedex(entities...))
	require.NoError(t, err)

	var decoded Pokedex
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Entities, 3)
	for i, name := range names {
		require.Equal(t, name, decoded.Entities[i].Name)
	}
	abra, ok := decoded.Get("Abra")
	require.True(t, ok)
	require.Equal(t, "200", abra.CatchRate)
}

func TestDocumentRoundTrip(t *testing.T) {
	second := bulbasaur()
	second.Name = "Ivysaur"
	second.NationalDexEntry = FormatDexEntry(2)
	second.Type2 = nil
	second.TypeColor = []*string{TypeColor("grass"), nil}
	second.Gen1.DamageTaken = nil
	second.Gen3.Ability = nil

	path := filepath.Join(t.TempDir(), "pokemon.json")
	require.NoError(t, WriteFile(path, []Entity{bulbasaur(), second}))

	doc, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, doc, 1)

	diff := cmp.Diff([]Entity{bulbasaur(), second}, doc[0].Entities)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestDecodeRejectsNonObject(t *testing.T) {
	_, err := Decode(strings.NewReader(`[["Bulbasaur"]]`))
	require.Error(t, err)
}
