package db

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"dexscrape/internal/components/chrono"
	"dexscrape/internal/components/telemetry"
	"dexscrape/internal/dex"

	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	sqlite, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer sqlite.Close()

	qry := New(sqlite)
	at := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	recorder, err := StartRun(
		ctx,
		qry,
		NewMakeTx(sqlite),
		chrono.FixedImpl{At: at},
		telemetry.NewRecordingAPI(),
		1, 3,
	)
	require.NoError(t, err)

	happiness := "70"
	bulbasaur := dex.Entity{
		Name:             "Bulbasaur",
		NationalDexEntry: "001",
		CatchRate:        "45",
		Gen2:             &dex.Gen2Record{BaseHappiness: &happiness},
	}
	require.NoError(t, recorder.Record(ctx, 1, bulbasaur, nil))
	require.NoError(t, recorder.Record(ctx, 2, dex.Entity{}, errors.New("fetch core page of 2: 404")))
	require.NoError(t, recorder.Record(ctx, 3, dex.Entity{Name: "Venusaur"}, nil))

	run, err := qry.GetLatestRun(ctx)
	require.NoError(t, err)
	require.Equal(t, recorder.RunID(), run.ID)
	require.Equal(t, at.Unix(), run.StartedAt)
	require.Equal(t, int64(1), run.FirstID)
	require.Equal(t, int64(3), run.LastID)

	entities, err := qry.GetRunEntities(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, entities, 2)
	require.Equal(t, "Bulbasaur", entities[0].Name)
	require.True(t, entities[0].BaseHappiness.Valid)
	require.Equal(t, "70", entities[0].BaseHappiness.String)
	require.False(t, entities[1].BaseHappiness.Valid)

	var stored dex.Entity
	require.NoError(t, json.Unmarshal(entities[0].Record, &stored))
	require.Equal(t, "45", stored.CatchRate)
	require.Equal(t, "001", stored.NationalDexEntry)

	failures, err := qry.GetRunFailures(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	require.Equal(t, int64(2), failures[0].DexID)
	require.Contains(t, failures[0].Reason, "404")
}

func TestRunsAreSeparate(t *testing.T) {
	ctx := context.Background()
	sqlite, err := OpenDB(filepath.Join(t.TempDir(), "nested", "dexscrape.db"))
	require.NoError(t, err)
	defer sqlite.Close()

	qry := New(sqlite)
	makeTx := NewMakeTx(sqlite)
	tel := telemetry.NewRecordingAPI()

	first, err := StartRun(ctx, qry, makeTx, chrono.StandardImpl{}, tel, 1, 1)
	require.NoError(t, err)
	require.NoError(t, first.Record(ctx, 1, dex.Entity{Name: "Bulbasaur"}, nil))

	second, err := StartRun(ctx, qry, makeTx, chrono.StandardImpl{}, tel, 1, 1)
	require.NoError(t, err)
	require.NotEqual(t, first.RunID(), second.RunID())

	entities, err := qry.GetRunEntities(ctx, second.RunID())
	require.NoError(t, err)
	require.Empty(t, entities)

	entities, err = qry.GetRunEntities(ctx, first.RunID())
	require.NoError(t, err)
	require.Len(t, entities, 1)
}
