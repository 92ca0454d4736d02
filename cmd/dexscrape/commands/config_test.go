package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dexscrape/internal/dex"
	"dexscrape/internal/scrapers/serebii"

	"github.com/stretchr/testify/require"
)

func TestReadConfigDefaults(t *testing.T) {
	cfg, err := readConfig(filepath.Join(t.TempDir(), "dexscrape.json5"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)
	require.Equal(t, 30*time.Second, cfg.Timeout())
	require.False(t, cfg.Telemetry.Enabled())
}

func TestReadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dexscrape.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// only scrape the first generation
		first: 1,
		last: 151,
		on_failure: "abort",
	}`), 0666))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dexscrape.local.json5"), []byte(`{
		database: "results.db",
		telemetry: { otlp: { traces: { http_endpoint: "http://localhost:4318" } } },
	}`), 0666))

	cfg, err := readConfig(path)
	require.NoError(t, err)
	require.Equal(t, 151, cfg.Last)
	require.Equal(t, "abort", cfg.OnFailure)
	require.Equal(t, "results.db", cfg.Database)
	require.Equal(t, serebii.DEFAULT_BASE_URL, cfg.BaseUrl)
	require.Equal(t, "pokemon.json", cfg.Output)
	require.True(t, cfg.Telemetry.Enabled())
}

func TestSummaryRow(t *testing.T) {
	grass := "grass"
	happiness := "70"
	row := summaryRow(serebii.Result{
		ID: 1,
		Entity: dex.Entity{
			Name:      "Bulbasaur",
			Type1:     &grass,
			CatchRate: "45",
			Gen2:      &dex.Gen2Record{BaseHappiness: &happiness},
		},
	})
	require.Equal(t, "001", row[0])
	require.Equal(t, "grass/-", row[2])
	require.Equal(t, "-", row[5])
	require.Equal(t, "yes", row[6])
	require.Equal(t, "70", row[8])

	failed := summaryRow(serebii.Result{ID: 2, Err: errors.New("not found")})
	require.Equal(t, "not found", failed[len(failed)-1])
}
