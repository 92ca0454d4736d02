package serebii

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"dexscrape/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func TestPagePath(t *testing.T) {
	require.Equal(t, "/pokedex-dp/001.shtml", PAGE_CORE.Path(1))
	require.Equal(t, "/pokedex/025.shtml", PAGE_GEN1.Path(25))
	require.Equal(t, "/pokedex-gs/200.shtml", PAGE_GEN2.Path(200))
	require.Equal(t, "/pokedex-rs/386.shtml", PAGE_GEN3.Path(386))
}

func TestClientFetch(t *testing.T) {
	page, err := os.ReadFile(filepath.Join("testdata", "core_001.html"))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokedex-dp/001.shtml" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("content-type", "text/html")
		w.Write(page)
	}))
	defer server.Close()

	tel := telemetry.NewRecordingAPI()
	client, err := NewClient(ClientOptions{BaseUrl: server.URL}, tel)
	require.NoError(t, err)

	doc, err := client.Fetch(context.Background(), PAGE_CORE, 1)
	require.NoError(t, err)
	require.Equal(t, "Bulbasaur", doc.Find(`div[align="center"] .dextable .fooinfo`).First().Text())

	_, err = client.Fetch(context.Background(), PAGE_GEN1, 1)
	require.Error(t, err)
	require.NotEmpty(t, tel.Find(telemetry.LEVEL_BROKEN, report_client_fetch))
}
