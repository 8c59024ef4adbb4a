package enrich

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/tiktoken-go/tokenizer"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/config"
)

// ContextBuilder turns raw page HTML into model-ready context: markdown
// conversion, then a recursive character split trimmed to the first chunk
// when the content exceeds the configured budget.
type ContextBuilder struct {
	converter *md.Converter
	splitter  textsplitter.RecursiveCharacter
	codec     tokenizer.Codec
	maxChars  int
}

// NewContextBuilder creates a ContextBuilder from the enrichment config
func NewContextBuilder(cfg config.EnrichConfig) (*ContextBuilder, error) {
	codec, err := tokenizer.Get(encodingFor(cfg.TokenizerEncoding))
	if err != nil {
		return nil, fmt.Errorf("initializing tokenizer: %w", err)
	}

	cb := &ContextBuilder{
		converter: md.NewConverter("", true, nil),
		codec:     codec,
		maxChars:  cfg.MaxContentChars,
	}
	cb.splitter = textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(cfg.MaxContentChars),
		textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
	)
	return cb, nil
}

func encodingFor(name string) tokenizer.Encoding {
	switch name {
	case "p50k_base":
		return tokenizer.P50kBase
	case "r50k_base":
		return tokenizer.R50kBase
	case "o200k_base":
		return tokenizer.O200kBase
	default:
		return tokenizer.Cl100kBase
	}
}

// Build converts page HTML to markdown and trims it to the first split
// chunk when it exceeds the character budget.
func (cb *ContextBuilder) Build(html string) (string, error) {
	markdown, err := cb.converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	markdown = strings.TrimSpace(markdown)

	if len(markdown) > cb.maxChars {
		chunks, err := cb.splitter.SplitText(markdown)
		if err != nil {
			return "", fmt.Errorf("splitting content: %w", err)
		}
		if len(chunks) > 0 {
			markdown = chunks[0]
		}
	}
	return markdown, nil
}

// EstimateTokens returns the token count of text under the configured
// encoding, or -1 when encoding fails.
func (cb *ContextBuilder) EstimateTokens(text string) int {
	ids, _, err := cb.codec.Encode(text)
	if err != nil {
		return -1
	}
	return len(ids)
}
