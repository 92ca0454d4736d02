package serebii

import (
	"context"
	"testing"

	"dexscrape/internal/components/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

type panicFetcher struct{}

func (panicFetcher) Fetch(ctx context.Context, page Page, id int) (*goquery.Document, error) {
	panic("unexpected layout")
}

func TestParseFailurePolicy(t *testing.T) {
	policy, err := ParseFailurePolicy("")
	require.NoError(t, err)
	require.Equal(t, ON_FAILURE_CONTINUE, policy)

	policy, err = ParseFailurePolicy("abort")
	require.NoError(t, err)
	require.Equal(t, ON_FAILURE_ABORT, policy)

	_, err = ParseFailurePolicy("retry")
	require.Error(t, err)
}

func TestScanInvalidRange(t *testing.T) {
	tel := telemetry.NewRecordingAPI()
	scanner := NewScanner(NewScraper(newFixtureFetcher(), tel), ScanOptions{}, tel)

	_, err := scanner.Scan(context.Background(), 0, 3)
	require.Error(t, err)
	_, err = scanner.Scan(context.Background(), 5, 3)
	require.Error(t, err)
}

func TestScanContinuesPastFailures(t *testing.T) {
	tel := telemetry.NewRecordingAPI()
	var seen []int
	scanner := NewScanner(
		NewScraper(newFixtureFetcher(), tel),
		ScanOptions{OnResult: func(r Result) { seen = append(seen, r.ID) }},
		tel,
	)

	results, err := scanner.Scan(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, []int{1, 2, 3}, seen)

	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	require.Error(t, results[2].Err)

	entities := Entities(results)
	require.Len(t, entities, 1)
	require.Equal(t, "Bulbasaur", entities[0].Name)

	scraped, ok := tel.LastCount(report_scanner_entities_scraped)
	require.True(t, ok)
	require.Equal(t, int64(1), scraped)
	failed, ok := tel.LastCount(report_scanner_entities_failed)
	require.True(t, ok)
	require.Equal(t, int64(2), failed)
}

func TestScanAbortsOnFailure(t *testing.T) {
	tel := telemetry.NewRecordingAPI()
	scanner := NewScanner(
		NewScraper(newFixtureFetcher(), tel),
		ScanOptions{OnFailure: ON_FAILURE_ABORT},
		tel,
	)

	results, err := scanner.Scan(context.Background(), 1, 3)
	require.Error(t, err)
	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
}

func TestScanEntityRecoversPanics(t *testing.T) {
	tel := telemetry.NewRecordingAPI()
	scanner := NewScanner(NewScraper(panicFetcher{}, tel), ScanOptions{}, tel)

	result := scanner.ScanEntity(context.Background(), 1)
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "unexpected layout")
	require.NotEmpty(t, tel.Find(telemetry.LEVEL_BROKEN, report_scanner_entity))
}

func TestScanStopsOnCancel(t *testing.T) {
	tel := telemetry.NewRecordingAPI()
	ctx, cancel := context.WithCancel(context.Background())

	scanner := NewScanner(
		NewScraper(newFixtureFetcher(), tel),
		ScanOptions{OnResult: func(Result) { cancel() }},
		tel,
	)

	results, err := scanner.Scan(ctx, 1, 3)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
}

func TestScanEntityFetchError(t *testing.T) {
	tel := telemetry.NewRecordingAPI()
	scanner := NewScanner(NewScraper(errFetcher{}, tel), ScanOptions{}, tel)

	result := scanner.ScanEntity(context.Background(), 7)
	require.Equal(t, 7, result.ID)
	require.Error(t, result.Err)
}
