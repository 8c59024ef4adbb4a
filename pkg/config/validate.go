package config

import (
	"fmt"
	"time"
)

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	// Crawl settings
	if c.Crawl.MaxPages <= 0 {
		warnings = append(warnings, "crawl.max_pages should be > 0, defaulting to 10")
		c.Crawl.MaxPages = 10
	}
	if c.Crawl.PageDelay < 0 {
		warnings = append(warnings, "crawl.page_delay cannot be negative, setting to 0")
		c.Crawl.PageDelay = 0
	}
	if c.Crawl.PageDelay == 0 {
		c.Crawl.PageDelay = 1 * time.Second
	}
	if c.Crawl.FetchTimeout <= 0 {
		c.Crawl.FetchTimeout = 10 * time.Second
	}
	if c.Crawl.MaxBodySizeBytes <= 0 {
		c.Crawl.MaxBodySizeBytes = 10 << 20 // 10 MiB
	}

	// Batch settings
	if c.Batch.Concurrency <= 0 {
		warnings = append(warnings, "batch.concurrency should be > 0, defaulting to 1 (sequential)")
		c.Batch.Concurrency = 1
	}
	if c.Batch.MinBusinessDelay < 0 || c.Batch.MaxBusinessDelay < 0 {
		warnings = append(warnings, "batch business delays cannot be negative, using defaults")
		c.Batch.MinBusinessDelay = 0
		c.Batch.MaxBusinessDelay = 0
	}
	if c.Batch.MinBusinessDelay == 0 && c.Batch.MaxBusinessDelay == 0 {
		c.Batch.MinBusinessDelay = 3 * time.Second
		c.Batch.MaxBusinessDelay = 7 * time.Second
	}
	if c.Batch.MinBusinessDelay > c.Batch.MaxBusinessDelay {
		warnings = append(warnings, fmt.Sprintf(
			"batch.min_business_delay (%v) > batch.max_business_delay (%v), using min for both",
			c.Batch.MinBusinessDelay, c.Batch.MaxBusinessDelay))
		c.Batch.MaxBusinessDelay = c.Batch.MinBusinessDelay
	}
	if c.Batch.SheetName == "" {
		c.Batch.SheetName = "Sheet1"
	}

	// Enrichment settings
	if c.Enrich.Model == "" {
		c.Enrich.Model = "gpt-4.1"
	}
	if c.Enrich.Temperature < 0 || c.Enrich.Temperature > 2 {
		warnings = append(warnings, "enrich.temperature out of range [0,2], defaulting to 0.2")
		c.Enrich.Temperature = 0.2
	}
	if c.Enrich.MaxContentChars <= 0 {
		c.Enrich.MaxContentChars = 4000
	}
	if c.Enrich.ChunkOverlap == 0 {
		c.Enrich.ChunkOverlap = 200
	} else if c.Enrich.ChunkOverlap < 0 || c.Enrich.ChunkOverlap >= c.Enrich.MaxContentChars {
		warnings = append(warnings, "enrich.chunk_overlap invalid, defaulting to 200")
		c.Enrich.ChunkOverlap = 200
	}
	if c.Enrich.TokenizerEncoding == "" {
		c.Enrich.TokenizerEncoding = "cl100k_base"
	}

	// HTTPClientSettings defaults
	c.validateHTTPClientSettings()

	return warnings, nil // AppConfig validation never fails fatally
}

// validateHTTPClientSettings applies defaults to HTTP client settings.
func (c *AppConfig) validateHTTPClientSettings() {
	h := &c.HTTPClientSettings
	if h.Timeout <= 0 {
		h.Timeout = 45 * time.Second
	}
	if h.MaxIdleConns <= 0 {
		h.MaxIdleConns = 100
	}
	if h.MaxIdleConnsPerHost <= 0 {
		h.MaxIdleConnsPerHost = 2
	}
	if h.IdleConnTimeout <= 0 {
		h.IdleConnTimeout = 90 * time.Second
	}
	if h.TLSHandshakeTimeout <= 0 {
		h.TLSHandshakeTimeout = 10 * time.Second
	}
	if h.ExpectContinueTimeout <= 0 {
		h.ExpectContinueTimeout = 1 * time.Second
	}
	if h.DialerTimeout <= 0 {
		h.DialerTimeout = 15 * time.Second
	}
	if h.DialerKeepAlive <= 0 {
		h.DialerKeepAlive = 30 * time.Second
	}
}
