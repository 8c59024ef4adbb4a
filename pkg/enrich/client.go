package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/config"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/utils"
)

// Enricher runs the AI analysis pass over a crawled business. All failures
// wrap ErrEnrichment so callers can fall back to the crawl-only result.
type Enricher struct {
	model   llms.Model
	builder *ContextBuilder
	usage   *UsageTracker
	cfg     config.EnrichConfig
	log     *logrus.Logger
}

// New creates an Enricher backed by the OpenAI chat API. The usage tracker
// is injected so one tracker can span a whole batch run.
func New(cfg config.EnrichConfig, usage *UsageTracker, log *logrus.Logger) (*Enricher, error) {
	llm, err := openai.New(openai.WithModel(cfg.Model))
	if err != nil {
		return nil, fmt.Errorf("%w: creating model client: %v", utils.ErrEnrichment, err)
	}
	return NewWithModel(llm, cfg, usage, log)
}

// NewWithModel creates an Enricher over any langchaingo model, for tests
// and alternative backends.
func NewWithModel(model llms.Model, cfg config.EnrichConfig, usage *UsageTracker, log *logrus.Logger) (*Enricher, error) {
	builder, err := NewContextBuilder(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrEnrichment, err)
	}
	return &Enricher{
		model:   model,
		builder: builder,
		usage:   usage,
		cfg:     cfg,
		log:     log,
	}, nil
}

// AnalyzeBusiness asks the model for a sales-oriented analysis of a crawled
// business. pageHTML is the root page's raw HTML, used as website context.
func (e *Enricher) AnalyzeBusiness(ctx context.Context, business models.Business, agg *models.CrawlAggregate, pageHTML string) (*models.BusinessAnalysis, error) {
	content, err := e.builder.Build(pageHTML)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrEnrichment, err)
	}

	businessJSON, err := json.Marshal(map[string]any{
		"name":             business.Name,
		"address":          business.Address,
		"phone_number":     business.PhoneNumber,
		"website":          business.Website,
		"business_profile": agg.Profile,
		"emails":           agg.Emails,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding business context: %v", utils.ErrEnrichment, err)
	}

	prompt, err := businessAnalysisPrompt.Format(map[string]any{
		"business_text":       string(businessJSON),
		"website_content":     content,
		"format_instructions": analysisFormatInstructions,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: formatting prompt: %v", utils.ErrEnrichment, err)
	}

	e.log.WithFields(logrus.Fields{
		"business":      business.Name,
		"model":         e.cfg.Model,
		"prompt_tokens": e.builder.EstimateTokens(prompt),
	}).Debug("Requesting business analysis")

	resp, err := e.model.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
		llms.WithTemperature(e.cfg.Temperature),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: model call failed: %v", utils.ErrEnrichment, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: model returned no choices", utils.ErrEnrichment)
	}
	choice := resp.Choices[0]
	e.recordUsage(choice.GenerationInfo)

	analysis, err := parseAnalysis(choice.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrEnrichment, err)
	}
	return analysis, nil
}

// recordUsage pulls token counts out of the provider's generation info.
// Providers that report nothing are recorded as zero-token calls.
func (e *Enricher) recordUsage(info map[string]any) {
	if e.usage == nil {
		return
	}
	e.usage.AddUsage(e.cfg.Model, intFromInfo(info, "PromptTokens"), intFromInfo(info, "CompletionTokens"))
}

func intFromInfo(info map[string]any, key string) int {
	if info == nil {
		return 0
	}
	switch v := info[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// parseAnalysis decodes the model's JSON reply, tolerating markdown fences
func parseAnalysis(content string) (*models.BusinessAnalysis, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var analysis models.BusinessAnalysis
	if err := json.Unmarshal([]byte(trimmed), &analysis); err != nil {
		return nil, fmt.Errorf("decoding analysis reply: %v", err)
	}
	if analysis.BusinessType == "" {
		return nil, fmt.Errorf("analysis reply missing business_type")
	}
	return &analysis, nil
}
