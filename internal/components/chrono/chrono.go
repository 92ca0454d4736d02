package chrono

import "time"

type API interface {
	Now() time.Time
}

// StandardImpl reports wall clock time in UTC, scrape runs are stamped with it.
type StandardImpl struct{}

func (StandardImpl) Now() time.Time {
	return time.Now().UTC()
}

// FixedImpl always reports the same instant.
type FixedImpl struct {
	At time.Time
}

func (f FixedImpl) Now() time.Time {
	return f.At
}
