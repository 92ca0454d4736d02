package commands

import (
	"fmt"
	"os"

	"dexscrape/internal/dex"
	"dexscrape/internal/scrapers/serebii"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func present(ok bool) string {
	if ok {
		return "yes"
	}
	return "-"
}

func summaryRow(result serebii.Result) table.Row {
	entry := dex.FormatDexEntry(result.ID)
	if result.Err != nil {
		return table.Row{entry, "-", "-", "-", "-", "-", "-", "-", "-", "-", result.Err.Error()}
	}

	e := result.Entity
	var happiness *string
	moves := 0
	if e.Gen2 != nil {
		happiness = e.Gen2.BaseHappiness
	}
	if e.Gen3 != nil {
		moves = e.Gen3.Moves.Len()
	}
	return table.Row{
		entry,
		e.Name,
		fmt.Sprintf("%s/%s", orDash(e.Type1), orDash(e.Type2)),
		e.CatchRate,
		e.GrowthRate,
		present(e.Gen1 != nil),
		present(e.Gen2 != nil),
		present(e.Gen3 != nil),
		orDash(happiness),
		moves,
		"",
	}
}

func renderSummary(results []serebii.Result) {
	t := newTable()
	t.AppendHeader(table.Row{
		"Dex",
		"Name",
		"Types",
		"Catch rate",
		"Growth",
		"Gen 1",
		"Gen 2",
		"Gen 3",
		"Base happiness",
		"Gen 3 moves",
		"Error",
	})
	for _, r := range results {
		t.AppendRow(summaryRow(r))
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d scraped", len(results)-failed), "", "", "", "", "", "", "", "", fmt.Sprintf("%d failed", failed)})
	t.Render()
}
