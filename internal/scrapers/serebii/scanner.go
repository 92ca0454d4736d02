package serebii

import (
	"context"
	"fmt"
	"runtime/debug"

	"dexscrape/internal/components/assert"
	"dexscrape/internal/components/telemetry"
	"dexscrape/internal/dex"
)

const (
	report_scanner_entity           = "scanner.entity"
	report_scanner_entities_scraped = "entities.scraped"
	report_scanner_entities_failed  = "entities.failed"
)

const (
	DEFAULT_FIRST = 1
	DEFAULT_LAST  = 386
)

// FailurePolicy decides what a scan does after an entity fails.
type FailurePolicy string

const (
	// ON_FAILURE_CONTINUE skips the failed entity.
	ON_FAILURE_CONTINUE FailurePolicy = "continue"
	// ON_FAILURE_ABORT stops the scan at the failed entity.
	ON_FAILURE_ABORT FailurePolicy = "abort"
)

func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case "", ON_FAILURE_CONTINUE:
		return ON_FAILURE_CONTINUE, nil
	case ON_FAILURE_ABORT:
		return ON_FAILURE_ABORT, nil
	}
	return "", fmt.Errorf("unknown failure policy %q, expected %q or %q", s, ON_FAILURE_CONTINUE, ON_FAILURE_ABORT)
}

// Result is the outcome of scraping one entity, Err is nil on success.
type Result struct {
	ID     int
	Entity dex.Entity
	Err    error
}

type ScanOptions struct {
	OnFailure FailurePolicy
	// OnResult is called after every entity, including failed ones. It is optional.
	OnResult func(Result)
}

// Scanner scrapes a range of entities one at a time.
type Scanner struct {
	scraper Scraper
	opts    ScanOptions
	tel     telemetry.API
}

func NewScanner(scraper Scraper, opts ScanOptions, tel telemetry.API) Scanner {
	assert.NotNil(tel)

	if opts.OnFailure == "" {
		opts.OnFailure = ON_FAILURE_CONTINUE
	}

	return Scanner{
		scraper: scraper,
		opts:    opts,
		tel:     telemetry.NewScopedAPI("serebii", tel),
	}
}

// ScanEntity scrapes a single entity, a panic while assembling it is turned
// into a failed result.
func (s Scanner) ScanEntity(ctx context.Context, id int) (result Result) {
	result.ID = id
	defer func() {
		if r := recover(); r != nil {
			result.Entity = dex.Entity{}
			result.Err = fmt.Errorf("%s: unexpected page structure: %v", dex.FormatDexEntry(id), r)
			s.tel.ReportBroken(report_scanner_entity, result.Err, string(debug.Stack()))
		}
	}()

	entity, err := s.scraper.Entity(ctx, id)
	if err != nil {
		s.tel.ReportBroken(report_scanner_entity, err, id)
		result.Err = err
		return result
	}
	result.Entity = entity
	return result
}

// Scan scrapes every id from first to last inclusive, in order. The results
// of failed entities are included. Scan returns an error when the range is
// invalid, when ctx is cancelled, or with the failure of the entity that
// stopped the scan under ON_FAILURE_ABORT. The results collected up until
// then are always returned.
func (s Scanner) Scan(ctx context.Context, first, last int) ([]Result, error) {
	if first < 1 || last < first {
		return nil, fmt.Errorf("invalid range %d..%d", first, last)
	}

	var results []Result
	var scraped, failed int64
	for id := first; id <= last; id++ {
		err := ctx.Err()
		if err != nil {
			return results, err
		}

		result := s.ScanEntity(ctx, id)
		results = append(results, result)
		if result.Err != nil {
			failed++
			s.tel.ReportCount(report_scanner_entities_failed, failed)
		} else {
			scraped++
			s.tel.ReportCount(report_scanner_entities_scraped, scraped)
		}
		if s.opts.OnResult != nil {
			s.opts.OnResult(result)
		}

		if result.Err != nil && s.opts.OnFailure == ON_FAILURE_ABORT {
			return results, fmt.Errorf("scan aborted: %w", result.Err)
		}
	}
	return results, nil
}

// Entities returns the entities of the successful results.
func Entities(results []Result) []dex.Entity {
	var entities []dex.Entity
	for _, r := range results {
		if r.Err == nil {
			entities = append(entities, r.Entity)
		}
	}
	return entities
}
