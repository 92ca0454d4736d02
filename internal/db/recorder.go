package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"dexscrape/internal/components/assert"
	"dexscrape/internal/components/chrono"
	"dexscrape/internal/components/telemetry"
	"dexscrape/internal/dex"
)

const (
	report_db_query = "db.query"
)

// Recorder stores the outcome of every entity of a single scrape run.
type Recorder struct {
	runID  int64
	makeTx MakeTx
	tel    telemetry.API
}

// StartRun creates the run that every following Record call is stored under.
func StartRun(
	ctx context.Context,
	qry *Queries,
	makeTx MakeTx,
	time chrono.API,
	tel telemetry.API,
	first, last int,
) (Recorder, error) {
	assert.NotNil(qry)
	assert.NotNil(makeTx)
	assert.NotNil(time)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("store", tel)

	runID, err := qry.CreateRun(ctx, CreateRunParams{
		StartedAt: time.Now().Unix(),
		FirstID:   int64(first),
		LastID:    int64(last),
	})
	if err != nil {
		tel.ReportBroken(report_db_query, err, "CreateRun")
		return Recorder{}, err
	}

	return Recorder{
		runID:  runID,
		makeTx: makeTx,
		tel:    tel,
	}, nil
}

func (r Recorder) RunID() int64 {
	return r.runID
}

// Record stores a scraped entity, or the reason it could not be scraped when
// `scrapeErr` is not nil.
func (r Recorder) Record(ctx context.Context, id int, entity dex.Entity, scrapeErr error) error {
	tx, discard, commit, err := r.makeTx(ctx)
	if err != nil {
		r.tel.ReportBroken(report_db_query, fmt.Errorf("make tx: %w", err))
		return err
	}
	defer discard()

	if scrapeErr != nil {
		err = tx.NoteFailure(ctx, NoteFailureParams{
			RunID:  r.runID,
			DexID:  int64(id),
			Reason: scrapeErr.Error(),
		})
		if err != nil {
			r.tel.ReportBroken(report_db_query, err, "NoteFailure", id)
			return err
		}
		return commit()
	}

	record, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", entity.Name, err)
	}
	var happiness sql.NullString
	if entity.Gen2 != nil && entity.Gen2.BaseHappiness != nil {
		happiness = sql.NullString{String: *entity.Gen2.BaseHappiness, Valid: true}
	}

	err = tx.NoteEntity(ctx, NoteEntityParams{
		RunID:         r.runID,
		DexID:         int64(id),
		Name:          entity.Name,
		BaseHappiness: happiness,
		Record:        record,
	})
	if err != nil {
		r.tel.ReportBroken(report_db_query, err, "NoteEntity", id)
		return err
	}
	return commit()
}
