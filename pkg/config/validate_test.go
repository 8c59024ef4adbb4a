package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AppliesDefaults(t *testing.T) {
	var cfg AppConfig
	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)

	assert.Equal(t, 10, cfg.Crawl.MaxPages)
	assert.Equal(t, 1*time.Second, cfg.Crawl.PageDelay)
	assert.Equal(t, 10*time.Second, cfg.Crawl.FetchTimeout)
	assert.Equal(t, int64(10<<20), cfg.Crawl.MaxBodySizeBytes)

	assert.Equal(t, 1, cfg.Batch.Concurrency)
	assert.Equal(t, 3*time.Second, cfg.Batch.MinBusinessDelay)
	assert.Equal(t, 7*time.Second, cfg.Batch.MaxBusinessDelay)
	assert.Equal(t, "Sheet1", cfg.Batch.SheetName)

	assert.Equal(t, "gpt-4.1", cfg.Enrich.Model)
	assert.Equal(t, 4000, cfg.Enrich.MaxContentChars)
	assert.Equal(t, 200, cfg.Enrich.ChunkOverlap)
	assert.Equal(t, "cl100k_base", cfg.Enrich.TokenizerEncoding)

	assert.Equal(t, 45*time.Second, cfg.HTTPClientSettings.Timeout)
	assert.Equal(t, 100, cfg.HTTPClientSettings.MaxIdleConns)
}

func TestValidate_KeepsExplicitValues(t *testing.T) {
	cfg := AppConfig{
		Crawl: CrawlConfig{
			MaxPages:         25,
			PageDelay:        2 * time.Second,
			FetchTimeout:     5 * time.Second,
			MaxBodySizeBytes: 1 << 20,
		},
		Batch: BatchConfig{
			Concurrency:      4,
			MinBusinessDelay: time.Second,
			MaxBusinessDelay: 2 * time.Second,
			SheetName:        "Businesses",
		},
		Enrich: EnrichConfig{
			Model:           "gpt-4.1-mini",
			Temperature:     0.7,
			MaxContentChars: 8000,
			ChunkOverlap:    400,
		},
	}

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, 25, cfg.Crawl.MaxPages)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Equal(t, "Businesses", cfg.Batch.SheetName)
	assert.Equal(t, "gpt-4.1-mini", cfg.Enrich.Model)
	assert.Equal(t, 8000, cfg.Enrich.MaxContentChars)
}

func TestValidate_SwappedBusinessDelays(t *testing.T) {
	cfg := AppConfig{
		Batch: BatchConfig{
			Concurrency:      1,
			MinBusinessDelay: 10 * time.Second,
			MaxBusinessDelay: 5 * time.Second,
		},
	}
	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.Equal(t, cfg.Batch.MinBusinessDelay, cfg.Batch.MaxBusinessDelay)
}

func TestValidate_ChunkOverlap(t *testing.T) {
	// Unset overlap takes the default silently
	cfg := AppConfig{Enrich: EnrichConfig{MaxContentChars: 8000}}
	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Enrich.ChunkOverlap)
	for _, w := range warnings {
		assert.NotContains(t, w, "chunk_overlap")
	}

	// Overlap at or above the chunk size is rejected with a warning
	cfg = AppConfig{Enrich: EnrichConfig{MaxContentChars: 1000, ChunkOverlap: 1000}}
	warnings, err = cfg.Validate()
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.Equal(t, 200, cfg.Enrich.ChunkOverlap)

	cfg = AppConfig{Enrich: EnrichConfig{ChunkOverlap: -5}}
	_, err = cfg.Validate()
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Enrich.ChunkOverlap)
}

func TestValidate_TemperatureOutOfRange(t *testing.T) {
	cfg := AppConfig{Enrich: EnrichConfig{Temperature: 3.5}}
	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.InDelta(t, 0.2, cfg.Enrich.Temperature, 0.0001)
}
