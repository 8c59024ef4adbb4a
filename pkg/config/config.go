package config

import "time"

// CrawlConfig holds settings for crawling a single business website
type CrawlConfig struct {
	MaxPages         int           `yaml:"max_pages"`           // Page budget per site
	PageDelay        time.Duration `yaml:"page_delay"`          // Politeness pause between pages of one site
	FetchTimeout     time.Duration `yaml:"fetch_timeout"`       // Per-request timeout
	MaxBodySizeBytes int64         `yaml:"max_body_size_bytes"` // Cap on the HTML body read per page
}

// BatchConfig holds settings for the spreadsheet batch driver
type BatchConfig struct {
	Concurrency      int           `yaml:"concurrency"`        // Businesses processed in parallel (1 = sequential)
	MinBusinessDelay time.Duration `yaml:"min_business_delay"` // Lower bound of the randomized pause between businesses
	MaxBusinessDelay time.Duration `yaml:"max_business_delay"` // Upper bound of the randomized pause between businesses
	SheetName        string        `yaml:"sheet_name"`         // Worksheet to read from .xlsx inputs
}

// EnrichConfig holds settings for the AI enrichment layer
type EnrichConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Model             string  `yaml:"model"`
	Temperature       float64 `yaml:"temperature"`
	MaxContentChars   int     `yaml:"max_content_chars"`  // Website content is trimmed to the first chunk of this size
	ChunkOverlap      int     `yaml:"chunk_overlap"`
	TokenizerEncoding string  `yaml:"tokenizer_encoding"` // Encoding for token estimates, e.g. cl100k_base
}

// HTTPClientConfig holds settings for the shared HTTP client
type HTTPClientConfig struct {
	Timeout               time.Duration `yaml:"timeout,omitempty"`
	MaxIdleConns          int           `yaml:"max_idle_conns,omitempty"`
	MaxIdleConnsPerHost   int           `yaml:"max_idle_conns_per_host,omitempty"`
	IdleConnTimeout       time.Duration `yaml:"idle_conn_timeout,omitempty"`
	TLSHandshakeTimeout   time.Duration `yaml:"tls_handshake_timeout,omitempty"`
	ExpectContinueTimeout time.Duration `yaml:"expect_continue_timeout,omitempty"`
	ForceAttemptHTTP2     *bool         `yaml:"force_attempt_http2,omitempty"` // nil=default, true=force, false=disable
	DialerTimeout         time.Duration `yaml:"dialer_timeout,omitempty"`
	DialerKeepAlive       time.Duration `yaml:"dialer_keep_alive,omitempty"`
}

// AppConfig holds the global application configuration
type AppConfig struct {
	Crawl              CrawlConfig      `yaml:"crawl"`
	Batch              BatchConfig      `yaml:"batch"`
	Enrich             EnrichConfig     `yaml:"enrich"`
	HTTPClientSettings HTTPClientConfig `yaml:"http_client_settings,omitempty"`
}
