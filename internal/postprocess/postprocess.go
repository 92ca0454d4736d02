// Package postprocess rewrites an already scraped pokedex file.
package postprocess

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"dexscrape/internal/components/assert"
	"dexscrape/internal/components/telemetry"
	"dexscrape/internal/dex"
	"dexscrape/pkg/textutil"
)

const (
	report_inject_exp_resolve = "inject-exp.resolve"
	report_inject_exp_extract = "inject-exp.extract"
)

const (
	DEFAULT_FIX_STATS_FILE  = "pokemon.json"
	DEFAULT_INJECT_EXP_FILE = "json_files/pokemon.json"
	DEFAULT_ASM_DIR         = "gen_2_base_stats"

	// names this similar to the name of an asm file are considered the same
	SIMILARITY_THRESHOLD = 0.9
)

// FixStats rewrites the file at `path` with every stat as an integer. Stats
// stored as strings are read with dex.ParseStat, so anything unparseable
// becomes 0. It returns the amount of stat blocks in the file.
func FixStats(path string) (int, error) {
	doc, err := dex.ReadFile(path)
	if err != nil {
		return 0, err
	}

	blocks := 0
	for _, pokedex := range doc {
		for _, e := range pokedex.Entities {
			if e.Gen1 != nil {
				blocks++
			}
			if e.Gen2 != nil {
				blocks++
			}
			if e.Gen3 != nil {
				blocks++
			}
		}
	}

	err = dex.WriteDocument(path, doc)
	if err != nil {
		return 0, err
	}
	return blocks, nil
}

var baseExpRegex = regexp.MustCompile(`(?i)^\s*db\s+(\d+)\s*;\s*base\s+exp\s*$`)

// ExtractExpYield finds the base experience in a base stats asm file, it is
// the line that reads like `db 64 ; base exp`.
func ExtractExpYield(r io.Reader) (int, bool, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		groups := baseExpRegex.FindStringSubmatch(scanner.Text())
		if len(groups) < 2 {
			continue
		}
		n, err := strconv.Atoi(groups[1])
		if err != nil {
			return 0, false, err
		}
		return n, true, nil
	}
	return 0, false, scanner.Err()
}

// ExpInjector adds the base experience of each entity from a directory of
// base stats asm files, one per entity.
type ExpInjector struct {
	asmDir string
	stems  []string
	tel    telemetry.API
}

// InjectResult counts what happened to the entities of a document.
type InjectResult struct {
	Injected int
	Missing  []string
}

func NewExpInjector(asmDir string, tel telemetry.API) (ExpInjector, error) {
	assert.NotEmptyStr(asmDir)
	assert.NotNil(tel)

	entries, err := os.ReadDir(asmDir)
	if err != nil {
		return ExpInjector{}, fmt.Errorf("read asm dir: %w", err)
	}
	var stems []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".asm" {
			continue
		}
		stems = append(stems, strings.TrimSuffix(entry.Name(), ".asm"))
	}

	return ExpInjector{
		asmDir: asmDir,
		stems:  stems,
		tel:    telemetry.NewScopedAPI("postprocess", tel),
	}, nil
}

// Resolve finds the asm file of an entity. The file named exactly after the
// entity wins, then one whose normalized name is the same, then the closest
// one by similarity. Ambiguous or differently numbered names resolve to nothing.
func (i ExpInjector) Resolve(name string) (string, bool) {
	for _, stem := range i.stems {
		if stem == name {
			return filepath.Join(i.asmDir, stem+".asm"), true
		}
	}
	normalized := textutil.NormalizeName(name)
	for _, stem := range i.stems {
		if textutil.NormalizeName(stem) == normalized {
			return filepath.Join(i.asmDir, stem+".asm"), true
		}
	}
	stem, _, ok := textutil.ClosestMatch(name, i.stems, SIMILARITY_THRESHOLD)
	if !ok {
		return "", false
	}
	return filepath.Join(i.asmDir, stem+".asm"), true
}

func (i ExpInjector) expYield(path string) (int, bool) {
	f, err := os.Open(path)
	if err != nil {
		i.tel.ReportBroken(report_inject_exp_extract, err, path)
		return 0, false
	}
	defer f.Close()

	exp, ok, err := ExtractExpYield(f)
	if err != nil {
		i.tel.ReportBroken(report_inject_exp_extract, err, path)
		return 0, false
	}
	if !ok {
		i.tel.ReportWarning(report_inject_exp_extract, "no base exp line", path)
		return 0, false
	}
	return exp, true
}

// Inject sets the exp yield of every entity in `doc` that has an asm file.
// Entities without one are left as they are.
func (i ExpInjector) Inject(doc dex.Document) InjectResult {
	var result InjectResult
	for _, pokedex := range doc {
		for idx := range pokedex.Entities {
			e := &pokedex.Entities[idx]

			path, ok := i.Resolve(e.Name)
			if !ok {
				i.tel.ReportWarning(report_inject_exp_resolve, "no asm file found", e.Name)
				result.Missing = append(result.Missing, e.Name)
				continue
			}
			exp, ok := i.expYield(path)
			if !ok {
				continue
			}
			e.ExpYield = &exp
			result.Injected++
		}
	}
	return result
}

// InjectFile is Inject on the document at `path`, the document is rewritten
// in place.
func (i ExpInjector) InjectFile(path string) (InjectResult, error) {
	doc, err := dex.ReadFile(path)
	if err != nil {
		return InjectResult{}, err
	}
	result := i.Inject(doc)
	err = dex.WriteDocument(path, doc)
	if err != nil {
		return InjectResult{}, err
	}
	return result, nil
}
