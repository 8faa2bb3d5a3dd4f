// Package research looks up specifications, pricing and photos for a piece
// of equipment. Lookups never fail: every problem degrades the result.
package research

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/erazemk/camorent/internal/metrics"
	"github.com/erazemk/camorent/internal/model"
)

// Result sources.
const (
	SourceNone   = "none"
	SourceSmart  = "smart_scraper"
	SourceBasic  = "basic_scraper"
	SourceKnown  = "known_specs"
	SourceFailed = "failed"
)

// Confidence levels assigned by the strategies.
const (
	ConfidenceFailed  = 0.1
	ConfidenceSparse  = 0.4
	ConfidenceBasic   = 0.6
	ConfidenceSmart   = 0.7
	ConfidenceCurated = 0.8
)

const defaultPricing = "Contact manufacturer for pricing"

// Researcher produces a ResearchResult for a search query.
type Researcher interface {
	Research(ctx context.Context, query string) model.ResearchResult
}

// Strategy is one way of researching a query. Unlike a Researcher it may
// fail, which lets a Chain move on to the next one.
type Strategy interface {
	Name() string
	Lookup(ctx context.Context, query string) (model.ResearchResult, error)
}

// Chain tries its strategies in order and returns the first success.
type Chain struct {
	Strategies []Strategy
	Metrics    *metrics.Metrics
}

// NewChain returns a Chain over the non-nil strategies.
func NewChain(m *metrics.Metrics, strategies ...Strategy) *Chain {
	c := &Chain{Metrics: m}
	for _, s := range strategies {
		if s != nil {
			c.Strategies = append(c.Strategies, s)
		}
	}
	return c
}

// Research implements Researcher.
func (c *Chain) Research(ctx context.Context, query string) model.ResearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		c.Metrics.ResearchResult(SourceNone)
		return EmptyQueryResult()
	}

	err := errors.New("no research strategy configured")
	for _, s := range c.Strategies {
		var res model.ResearchResult
		res, err = s.Lookup(ctx, query)
		if err == nil {
			res.Source = s.Name()
			c.Metrics.ResearchResult(res.Source)
			return res
		}
		slog.Warn("research strategy failed", "strategy", s.Name(), "query", query, "error", err)
	}

	c.Metrics.ResearchResult(SourceFailed)
	return FailedResult(err)
}

// EmptyQueryResult is returned for blank queries.
func EmptyQueryResult() model.ResearchResult {
	return model.ResearchResult{
		Specifications: map[string]any{},
		Pricing:        map[string]any{},
		Images:         []string{model.NoImagePlaceholder},
		Confidence:     ConfidenceFailed,
		Source:         SourceNone,
	}
}

// FailedResult describes a lookup that could not be completed.
func FailedResult(err error) model.ResearchResult {
	return model.ResearchResult{
		Specifications: map[string]any{"error": "Web research failed: " + err.Error()},
		Pricing:        map[string]any{"market_price": "Unable to fetch pricing"},
		Images:         []string{model.ErrorImagePlaceholder},
		Confidence:     ConfidenceFailed,
		Source:         SourceFailed,
	}
}

var queryBrands = map[string]bool{
	"canon": true, "sony": true, "nikon": true,
	"fuji": true, "panasonic": true, "olympus": true,
}

// parseQuery recovers a lowercase brand and model from a query such as
// "Canon EOS R5 specifications". The model is empty without a known brand.
func parseQuery(query string) (brand, modelName string) {
	parts := strings.Fields(strings.ToLower(query))
	for _, p := range parts {
		if queryBrands[p] {
			brand = p
			break
		}
	}
	if brand == "" {
		return "", ""
	}
	var rest []string
	for _, p := range parts {
		if p != brand && p != "specifications" {
			rest = append(rest, p)
		}
	}
	return brand, strings.Join(rest, " ")
}
