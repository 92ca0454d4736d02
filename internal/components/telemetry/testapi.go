package telemetry

import (
	"strings"
	"sync"
)

// Level is the severity a Report was made with.
type Level int

const (
	LEVEL_DEBUG Level = iota
	LEVEL_WARNING
	LEVEL_BROKEN
	LEVEL_COUNT
)

// Report is a single call recorded by RecordingAPI.
type Report struct {
	Level  Level
	Id     string
	Params []any
	Count  int64
}

// RecordingAPI keeps every report in memory, it is meant for tests that need to
// assert that something was (or was not) reported.
type RecordingAPI struct {
	mutex   sync.Mutex
	reports []Report
}

func NewRecordingAPI() *RecordingAPI {
	return &RecordingAPI{}
}

func (r *RecordingAPI) record(report Report) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.reports = append(r.reports, report)
}

func (r *RecordingAPI) ReportBroken(id string, params ...any) {
	r.record(Report{Level: LEVEL_BROKEN, Id: id, Params: params})
}

func (r *RecordingAPI) ReportWarning(id string, params ...any) {
	r.record(Report{Level: LEVEL_WARNING, Id: id, Params: params})
}

func (r *RecordingAPI) ReportDebug(msg string, params ...any) {
	r.record(Report{Level: LEVEL_DEBUG, Id: msg, Params: params})
}

func (r *RecordingAPI) ReportCount(id string, count int64) {
	r.record(Report{Level: LEVEL_COUNT, Id: id, Count: count})
}

// Reports returns a copy of everything recorded so far.
func (r *RecordingAPI) Reports() []Report {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Find returns the reports of the given level whose id contains `id`.
func (r *RecordingAPI) Find(level Level, id string) []Report {
	var out []Report
	for _, report := range r.Reports() {
		if report.Level == level && strings.Contains(report.Id, id) {
			out = append(out, report)
		}
	}
	return out
}

// LastCount returns the last count reported for an id containing `id`.
func (r *RecordingAPI) LastCount(id string) (int64, bool) {
	found := r.Find(LEVEL_COUNT, id)
	if len(found) == 0 {
		return 0, false
	}
	return found[len(found)-1].Count, true
}
