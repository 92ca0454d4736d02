// scraper.go assembles the pages of an entity into a single record.

package serebii

import (
	"context"
	"fmt"

	"dexscrape/internal/components/assert"
	"dexscrape/internal/components/telemetry"
	"dexscrape/internal/dex"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_scraper_fetch_generation = "scraper.fetch-generation"
)

// Scraper scrapes serebii.
type Scraper struct {
	fetcher Fetcher
	tel     telemetry.API
}

func NewScraper(fetcher Fetcher, tel telemetry.API) Scraper {
	assert.NotNil(fetcher)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("serebii", tel)

	return Scraper{
		fetcher: fetcher,
		tel:     tel,
	}
}

func (s Scraper) extractor(page Page, id int) Extractor {
	return NewExtractor(fmt.Sprintf("%s %s", page, dex.FormatDexEntry(id)), s.tel)
}

// fetchGeneration fetches a generation page, a failure is reported and
// leaves that generation empty.
func (s Scraper) fetchGeneration(ctx context.Context, page Page, id int) *goquery.Document {
	doc, err := s.fetcher.Fetch(ctx, page, id)
	if err != nil {
		s.tel.ReportBroken(report_scraper_fetch_generation, err, page.String(), id)
		return nil
	}
	return doc
}

// Gen1 is nil for entities that are not in the gen1 dex, the page is not
// fetched for them.
func (s Scraper) Gen1(ctx context.Context, id int) *dex.Gen1Record {
	if id >= dex.Gen1Limit {
		return nil
	}
	doc := s.fetchGeneration(ctx, PAGE_GEN1, id)
	if doc == nil {
		return nil
	}
	return ParseGen1(doc, s.extractor(PAGE_GEN1, id))
}

func (s Scraper) Gen2(ctx context.Context, id int) *dex.Gen2Record {
	if id >= dex.Gen2Limit {
		return nil
	}
	doc := s.fetchGeneration(ctx, PAGE_GEN2, id)
	if doc == nil {
		return nil
	}
	return ParseGen2(doc, s.extractor(PAGE_GEN2, id))
}

func (s Scraper) Gen3(ctx context.Context, id int) *dex.Gen3Record {
	doc := s.fetchGeneration(ctx, PAGE_GEN3, id)
	if doc == nil {
		return nil
	}
	return ParseGen3(doc, s.extractor(PAGE_GEN3, id))
}

// Entity scrapes every page of the entity with the given id. Failing to
// fetch or read the core page fails the entity, a generation page that
// fails only leaves that generation empty.
func (s Scraper) Entity(ctx context.Context, id int) (dex.Entity, error) {
	doc, err := s.fetcher.Fetch(ctx, PAGE_CORE, id)
	if err != nil {
		return dex.Entity{}, err
	}
	core, err := ParseCore(doc, s.extractor(PAGE_CORE, id))
	if err != nil {
		return dex.Entity{}, fmt.Errorf("%s: %w", dex.FormatDexEntry(id), err)
	}

	entity := dex.Entity{
		NationalDexEntry: dex.FormatDexEntry(id),
	}
	core.Apply(&entity)
	entity.Gen1 = s.Gen1(ctx, id)
	entity.Gen2 = s.Gen2(ctx, id)
	entity.Gen3 = s.Gen3(ctx, id)
	return entity, nil
}
