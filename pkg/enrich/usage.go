package enrich

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Per-1K-token pricing by model. Unknown models are billed at zero and
// flagged in the log so the table can be extended.
var pricing = map[string]struct{ input, output float64 }{
	"gpt-4.1":      {0.002 / 1000, 0.008 / 1000},
	"gpt-4.1-mini": {0.0004 / 1000, 0.0016 / 1000},
	"gpt-4.1-nano": {0.0001 / 1000, 0.0004 / 1000},
}

// UsageRecord is one model call's token and cost accounting
type UsageRecord struct {
	Timestamp        time.Time `json:"timestamp"`
	Model            string    `json:"model"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	InputCost        float64   `json:"input_cost"`
	OutputCost       float64   `json:"output_cost"`
	TotalCost        float64   `json:"total_cost"`
}

// UsageSummary aggregates all recorded calls
type UsageSummary struct {
	TotalTokens         int     `json:"total_tokens"`
	TotalCost           float64 `json:"total_cost"`
	NumberOfCalls       int     `json:"number_of_calls"`
	AverageCostPerCall  float64 `json:"average_cost_per_call"`
	AverageTokensPerCall float64 `json:"average_tokens_per_call"`
}

// UsageTracker accumulates token usage across model calls. Injected into the
// enricher so batch runs can share one tracker and tests can inspect it.
type UsageTracker struct {
	mu      sync.Mutex
	history []UsageRecord
	tokens  int
	cost    float64
	log     *logrus.Logger
}

// NewUsageTracker creates an empty tracker
func NewUsageTracker(log *logrus.Logger) *UsageTracker {
	return &UsageTracker{log: log}
}

// AddUsage records one call and returns its priced record
func (t *UsageTracker) AddUsage(model string, promptTokens, completionTokens int) UsageRecord {
	p, known := pricing[model]

	rec := UsageRecord{
		Timestamp:        time.Now().UTC(),
		Model:            model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		InputCost:        float64(promptTokens) * p.input,
		OutputCost:       float64(completionTokens) * p.output,
	}
	rec.TotalCost = rec.InputCost + rec.OutputCost

	t.mu.Lock()
	t.history = append(t.history, rec)
	t.tokens += rec.TotalTokens
	t.cost += rec.TotalCost
	runningTokens, runningCost := t.tokens, t.cost
	t.mu.Unlock()

	entry := t.log.WithFields(logrus.Fields{
		"model":             model,
		"prompt_tokens":     promptTokens,
		"completion_tokens": completionTokens,
		"call_cost":         rec.TotalCost,
		"running_tokens":    runningTokens,
		"running_cost":      runningCost,
	})
	if !known {
		entry.Warn("Model call recorded with no pricing entry, billed at zero")
	} else {
		entry.Debug("Model call recorded")
	}
	return rec
}

// Summary returns totals and per-call averages across all recorded calls
func (t *UsageTracker) Summary() UsageSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := UsageSummary{
		TotalTokens:   t.tokens,
		TotalCost:     t.cost,
		NumberOfCalls: len(t.history),
	}
	if len(t.history) > 0 {
		s.AverageCostPerCall = t.cost / float64(len(t.history))
		s.AverageTokensPerCall = float64(t.tokens) / float64(len(t.history))
	}
	return s
}

// History returns a copy of all recorded calls in order
func (t *UsageTracker) History() []UsageRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]UsageRecord, len(t.history))
	copy(out, t.history)
	return out
}
