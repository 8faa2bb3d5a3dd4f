// Package extract pulls structured equipment fields out of a transcript.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/erazemk/camorent/internal/config"
	"github.com/erazemk/camorent/internal/llm"
	"github.com/erazemk/camorent/internal/model"
)

// Extractor turns a transcript into an Extraction.
type Extractor interface {
	Extract(ctx context.Context, transcript string) (model.Extraction, error)
}

// New returns the model-backed extractor when an OpenAI key is configured
// and the pattern extractor otherwise.
func New(cfg *config.Config, opts ...llm.Option) Extractor {
	if !cfg.HasModelKey() {
		return PatternExtractor{}
	}
	return NewModelExtractor(llm.NewClient(llm.Config{
		APIKey:  cfg.OpenAIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.ChatModel,
		Timeout: cfg.OpenAITimeout,
	}, opts...))
}

// SearchQuery builds the research query for a brand and model.
func SearchQuery(brand, modelName string) string {
	return fmt.Sprintf("%s %s specifications", brand, modelName)
}

func normalizeCondition(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
