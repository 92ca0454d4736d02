// client.go contains the logic for fetching serebii pages, it knows nothing about what
// is on them.

package serebii

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"dexscrape/internal/components/assert"
	"dexscrape/internal/components/telemetry"
	"dexscrape/internal/dex"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	report_client_fetch = "client.fetch"
)

const (
	DEFAULT_BASE_URL   = "https://www.serebii.net"
	DEFAULT_USER_AGENT = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	DEFAULT_TIMEOUT    = time.Second * 30
)

// Page is one of the page layouts an entity has on the site.
type Page int

const (
	PAGE_CORE Page = iota
	PAGE_GEN1
	PAGE_GEN2
	PAGE_GEN3
)

func (p Page) String() string {
	switch p {
	case PAGE_CORE:
		return "core"
	case PAGE_GEN1:
		return "gen1"
	case PAGE_GEN2:
		return "gen2"
	case PAGE_GEN3:
		return "gen3"
	}
	return fmt.Sprintf("page(%d)", int(p))
}

// Path is the path of the page for the entity with the given id.
func (p Page) Path(id int) string {
	entry := dex.FormatDexEntry(id)
	switch p {
	case PAGE_GEN1:
		return fmt.Sprintf("/pokedex/%s.shtml", entry)
	case PAGE_GEN2:
		return fmt.Sprintf("/pokedex-gs/%s.shtml", entry)
	case PAGE_GEN3:
		return fmt.Sprintf("/pokedex-rs/%s.shtml", entry)
	default:
		return fmt.Sprintf("/pokedex-dp/%s.shtml", entry)
	}
}

// Fetcher returns the parsed page of an entity.
//
// note: fault injection point
type Fetcher interface {
	Fetch(ctx context.Context, page Page, id int) (*goquery.Document, error)
}

type ClientOptions struct {
	BaseUrl   string
	UserAgent string
	Timeout   time.Duration
	// DumpOutput receives the raw http exchange of every fetch, it is optional.
	DumpOutput telemetry.InstrumentOutput
}

// Client fetches pages over http.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	tel telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("serebii", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DEFAULT_BASE_URL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DEFAULT_USER_AGENT
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DEFAULT_TIMEOUT
	}

	parsedBaseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	httpClient.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(httpClient, tel, opts.DumpOutput)

	return &Client{
		BaseUrl: parsedBaseUrl,
		Http:    httpClient,
		tel:     tel,
	}, nil
}

func (c *Client) Fetch(ctx context.Context, page Page, id int) (*goquery.Document, error) {
	path := page.Path(id)
	res, err := c.Http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch, fmt.Errorf("get: %w", err), path)
		return nil, fmt.Errorf("fetch %s page of %d: %w", page, id, err)
	}
	if res.IsError() {
		err = fmt.Errorf("fetch %s page of %d: unexpected status %s", page, id, res.Status())
		c.tel.ReportBroken(report_client_fetch, err, path)
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		c.tel.ReportBroken(report_client_fetch, fmt.Errorf("parse page: %w", err), path)
		return nil, fmt.Errorf("parse %s page of %d: %w", page, id, err)
	}
	return doc, nil
}
