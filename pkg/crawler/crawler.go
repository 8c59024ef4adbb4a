package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/config"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/fetch"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/heuristics"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/parse"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/utils"
)

// Crawler walks one site breadth-first from its root URL, extracting and
// merging business information from every visited page.
type Crawler struct {
	fetcher      *fetch.Fetcher
	parser       *parse.PageParser
	analyzer     *heuristics.Analyzer
	pacer        *fetch.Pacer
	maxPages     int
	pageDelay    time.Duration
	fetchTimeout time.Duration
	log          *logrus.Logger
}

// New creates a Crawler with the given collaborators
func New(fetcher *fetch.Fetcher, pacer *fetch.Pacer, cfg config.CrawlConfig, log *logrus.Logger) *Crawler {
	return &Crawler{
		fetcher:      fetcher,
		parser:       parse.NewPageParser(log),
		analyzer:     heuristics.NewAnalyzer(log),
		pacer:        pacer,
		maxPages:     cfg.MaxPages,
		pageDelay:    cfg.PageDelay,
		fetchTimeout: cfg.FetchTimeout,
		log:          log,
	}
}

// Result carries the merged site aggregate plus the root page's raw HTML,
// kept so the enrichment layer can build model context without refetching.
type Result struct {
	Aggregate *models.CrawlAggregate
	RootHTML  []byte
}

// Crawl fetches up to maxPages same-host pages starting at rawURL and
// returns the merged aggregate. The root page must succeed: a failed root
// fetch fails the whole crawl. Failures on later pages are recorded and
// skipped, never retried. On context cancellation the aggregate built so
// far is returned alongside the context error.
func (c *Crawler) Crawl(ctx context.Context, rawURL string) (*Result, error) {
	// Spreadsheet websites often omit the scheme
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	rootURL, _, err := parse.ParseAndNormalize(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid root URL %q: %w", rawURL, err)
	}
	rootParsed, err := url.Parse(rootURL)
	if err != nil {
		return nil, fmt.Errorf("invalid root URL %q: %w", rawURL, err)
	}
	rootHost := rootParsed.Host

	crawlLog := c.log.WithField("root_url", rootURL)
	crawlLog.Info("Starting site crawl")

	front := newFrontier(rootURL)
	agg := newAggregator(rootURL)
	rootDone := false
	var rootHTML []byte

	for !front.empty() && front.visitedCount() < c.maxPages {
		pageURL, _ := front.pop()
		pageLog := crawlLog.WithField("url", pageURL)

		if rootDone {
			if err := c.pacer.Wait(ctx, rootHost, c.pageDelay); err != nil {
				return &Result{Aggregate: agg.finalize(), RootHTML: rootHTML}, err
			}
		}

		result, err := c.fetchPage(ctx, pageURL)
		c.pacer.MarkRequest(rootHost)
		if err != nil {
			// A per-page timeout is a page failure; only the crawl context
			// ending aborts the whole crawl.
			if ctx.Err() != nil {
				return &Result{Aggregate: agg.finalize(), RootHTML: rootHTML}, ctx.Err()
			}
			if !rootDone {
				crawlLog.WithError(err).Warn("Root page fetch failed, aborting crawl")
				return nil, err
			}
			pageLog.WithError(err).Warn("Page fetch failed, skipping")
			agg.result.PagesChecked = append(agg.result.PagesChecked, models.PageCheck{
				URL:    pageURL,
				Status: utils.CategorizeError(err),
			})
			continue
		}

		if !rootDone {
			rootDone = true
			rootHTML = result.Body
			agg.result.StatusCode = result.StatusCode
			if result.LastModified != "" {
				lm := result.LastModified
				agg.result.LastModified = &lm
			}
		}

		doc, err := c.parser.ParseDocument(result.Body, pageURL)
		if err != nil {
			pageLog.WithError(err).Warn("Page parse failed, skipping")
			agg.result.PagesChecked = append(agg.result.PagesChecked, models.PageCheck{
				URL:    pageURL,
				Status: utils.CategorizeError(err),
			})
			continue
		}

		_, pageParsed, err := parse.ParseAndNormalize(pageURL)
		if err != nil {
			// Cannot happen for URLs that already round-tripped the frontier
			pageLog.WithError(err).Warn("Page URL re-parse failed, skipping")
			continue
		}

		extraction := c.parser.Extract(doc, pageParsed, rootHost, result.StatusCode)
		pageProfile := c.analyzer.Analyze(doc, extraction)
		agg.mergePage(extraction, pageProfile)

		front.markVisited(pageURL)
		agg.result.PagesChecked = append(agg.result.PagesChecked, models.PageCheck{
			URL:    pageURL,
			Status: strconv.Itoa(result.StatusCode),
		})

		for _, link := range extraction.InternalLinks {
			front.push(link)
		}

		pageLog.WithFields(logrus.Fields{
			"visited":  front.visitedCount(),
			"frontier": len(front.queue),
			"emails":   len(extraction.Emails),
			"links":    len(extraction.InternalLinks),
		}).Debug("Page processed")
	}

	aggregate := agg.finalize()
	crawlLog.WithFields(logrus.Fields{
		"pages_visited": front.visitedCount(),
		"emails":        len(aggregate.Emails),
		"items":         len(aggregate.Items),
	}).Info("Crawl finished")
	return &Result{Aggregate: aggregate, RootHTML: rootHTML}, nil
}

// fetchPage applies the per-page timeout on top of the crawl context
func (c *Crawler) fetchPage(ctx context.Context, pageURL string) (*fetch.Result, error) {
	if c.fetchTimeout <= 0 {
		return c.fetcher.Fetch(ctx, pageURL)
	}
	pageCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()
	return c.fetcher.Fetch(pageCtx, pageURL)
}
