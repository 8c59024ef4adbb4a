package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/config"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/fetch"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestCrawler(t *testing.T, server *httptest.Server, maxPages int) *Crawler {
	t.Helper()
	log := testLogger()
	fetcher := fetch.NewFetcher(server.Client(), 10<<20, log)
	pacer := fetch.NewPacer(time.Millisecond, log)
	cfg := config.CrawlConfig{
		MaxPages:  maxPages,
		PageDelay: time.Millisecond,
	}
	return New(fetcher, pacer, cfg, log)
}

// linkedSiteHandler serves a site whose root links to /page/1..n-1
func linkedSiteHandler(n int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var links strings.Builder
		for i := 1; i < n; i++ {
			fmt.Fprintf(&links, `<a href="/page/%d">page %d</a>`, i, i)
		}
		// Keep whitespace between the paragraph and the links: text
		// extraction concatenates adjacent nodes without separators, so a
		// missing space would glue the email to the first link's text.
		fmt.Fprintf(w, `<html><body><p>Email info@example.com</p> %s</body></html>`, links.String())
	})
}

func TestCrawl_TerminatesAtPageBudget(t *testing.T) {
	server := httptest.NewServer(linkedSiteHandler(50))
	defer server.Close()

	c := newTestCrawler(t, server, 10)
	result, err := c.Crawl(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected crawl error: %v", err)
	}

	if len(result.Aggregate.PagesChecked) != 10 {
		t.Errorf("pages checked = %d, want exactly 10", len(result.Aggregate.PagesChecked))
	}
	for _, pc := range result.Aggregate.PagesChecked {
		if pc.Status != "200" {
			t.Errorf("page %s status = %q, want 200", pc.URL, pc.Status)
		}
	}
	if len(result.Aggregate.Emails) != 1 || result.Aggregate.Emails[0] != "info@example.com" {
		t.Errorf("emails = %v", result.Aggregate.Emails)
	}
}

func TestCrawl_ExhaustsSmallSite(t *testing.T) {
	server := httptest.NewServer(linkedSiteHandler(3))
	defer server.Close()

	c := newTestCrawler(t, server, 10)
	result, err := c.Crawl(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected crawl error: %v", err)
	}
	if len(result.Aggregate.PagesChecked) != 3 {
		t.Errorf("pages checked = %d, want all 3 reachable pages", len(result.Aggregate.PagesChecked))
	}
}

func TestCrawl_FailedPageSkipped(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="/broken">broken</a>
			<a href="/ok">ok</a>
		</body></html>`)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>fine</p></body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestCrawler(t, server, 10)
	result, err := c.Crawl(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("a single failed page must not fail the crawl: %v", err)
	}

	var statuses []string
	for _, pc := range result.Aggregate.PagesChecked {
		statuses = append(statuses, pc.Status)
	}
	if len(statuses) != 3 {
		t.Fatalf("pages checked = %v, want root, broken, ok", statuses)
	}
	if statuses[1] != "HTTP_5xx" {
		t.Errorf("broken page status = %q, want HTTP_5xx", statuses[1])
	}
	if statuses[2] != "200" {
		t.Errorf("ok page status = %q", statuses[2])
	}
}

func TestCrawl_RootFailureAbortsCrawl(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := newTestCrawler(t, server, 10)
	if _, err := c.Crawl(context.Background(), server.URL); err == nil {
		t.Fatal("expected error when the root page cannot be fetched")
	}
}

func TestCrawl_CancellationReturnsPartialAggregate(t *testing.T) {
	server := httptest.NewServer(linkedSiteHandler(50))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())

	log := testLogger()
	fetcher := fetch.NewFetcher(server.Client(), 10<<20, log)
	pacer := fetch.NewPacer(time.Millisecond, log)
	// A long page delay guarantees cancellation lands mid-crawl
	c := New(fetcher, pacer, config.CrawlConfig{MaxPages: 50, PageDelay: 200 * time.Millisecond}, log)

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	result, err := c.Crawl(ctx, server.URL)
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
	if result == nil || result.Aggregate == nil {
		t.Fatal("expected a partial aggregate alongside the cancellation error")
	}
	if got := len(result.Aggregate.PagesChecked); got < 1 || got >= 50 {
		t.Errorf("pages checked = %d, expected a partial crawl", got)
	}
}

func TestCrawl_InvalidRootURL(t *testing.T) {
	c := newTestCrawler(t, httptest.NewServer(linkedSiteHandler(1)), 5)
	if _, err := c.Crawl(context.Background(), "http://"+string(rune(0x7f))); err == nil {
		t.Fatal("expected error for an unparseable root URL")
	}
}
