package db

import (
	"database/sql"
)

type Entity struct {
	RunID         int64
	DexID         int64
	Name          string
	BaseHappiness sql.NullString
	Record        []byte
}

type ScrapeFailure struct {
	RunID  int64
	DexID  int64
	Reason string
}

type ScrapeRun struct {
	ID        int64
	StartedAt int64
	FirstID   int64
	LastID    int64
}
