package db

import (
	"context"
	"database/sql"
)

const createRun = `-- name: CreateRun :one
insert into scrape_run(started_at, first_id, last_id)
values (?, ?, ?)
returning id
`

type CreateRunParams struct {
	StartedAt int64
	FirstID   int64
	LastID    int64
}

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createRun, arg.StartedAt, arg.FirstID, arg.LastID)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const noteEntity = `-- name: NoteEntity :exec
insert into entity(run_id, dex_id, name, base_happiness, record)
values (?, ?, ?, ?, ?)
on conflict (run_id, dex_id) do update set
    name = excluded.name,
    base_happiness = excluded.base_happiness,
    record = excluded.record
`

type NoteEntityParams struct {
	RunID         int64
	DexID         int64
	Name          string
	BaseHappiness sql.NullString
	Record        []byte
}

func (q *Queries) NoteEntity(ctx context.Context, arg NoteEntityParams) error {
	_, err := q.db.ExecContext(ctx, noteEntity,
		arg.RunID,
		arg.DexID,
		arg.Name,
		arg.BaseHappiness,
		arg.Record,
	)
	return err
}

const noteFailure = `-- name: NoteFailure :exec
insert into scrape_failure(run_id, dex_id, reason)
values (?, ?, ?)
on conflict (run_id, dex_id) do update set
    reason = excluded.reason
`

type NoteFailureParams struct {
	RunID  int64
	DexID  int64
	Reason string
}

func (q *Queries) NoteFailure(ctx context.Context, arg NoteFailureParams) error {
	_, err := q.db.ExecContext(ctx, noteFailure, arg.RunID, arg.DexID, arg.Reason)
	return err
}

const getLatestRun = `-- name: GetLatestRun :one
select id, started_at, first_id, last_id from scrape_run
order by id desc
limit 1
`

func (q *Queries) GetLatestRun(ctx context.Context) (ScrapeRun, error) {
	row := q.db.QueryRowContext(ctx, getLatestRun)
	var i ScrapeRun
	err := row.Scan(
		&i.ID,
		&i.StartedAt,
		&i.FirstID,
		&i.LastID,
	)
	return i, err
}

const getRunEntities = `-- name: GetRunEntities :many
select run_id, dex_id, name, base_happiness, record from entity
where run_id = ?
order by dex_id asc
`

func (q *Queries) GetRunEntities(ctx context.Context, runID int64) ([]Entity, error) {
	rows, err := q.db.QueryContext(ctx, getRunEntities, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Entity
	for rows.Next() {
		var i Entity
		if err := rows.Scan(
			&i.RunID,
			&i.DexID,
			&i.Name,
			&i.BaseHappiness,
			&i.Record,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getRunFailures = `-- name: GetRunFailures :many
select run_id, dex_id, reason from scrape_failure
where run_id = ?
order by dex_id asc
`

func (q *Queries) GetRunFailures(ctx context.Context, runID int64) ([]ScrapeFailure, error) {
	rows, err := q.db.QueryContext(ctx, getRunFailures, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ScrapeFailure
	for rows.Next() {
		var i ScrapeFailure
		if err := rows.Scan(&i.RunID, &i.DexID, &i.Reason); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
