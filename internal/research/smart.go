package research

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/erazemk/camorent/internal/extract"
	"github.com/erazemk/camorent/internal/model"
)

// Reference pages handed to the smart scraper.
const (
	PageCanonEOSR5 = "https://en.wikipedia.org/wiki/Canon_EOS_R5"
	PageSonyA7RV   = "https://en.wikipedia.org/wiki/Sony_α7R_V"
	PageNikonZ9    = "https://en.wikipedia.org/wiki/Nikon_Z9"
)

const smartPrompt = `Extract camera specifications from this Wikipedia page.

Return a JSON object with the following structure:
- specifications: object containing sensor, resolution, and video info
- pricing: string with price information
- images: array of image URLs from the page
- confidence: number between 0-1

Make sure to return valid JSON only.`

const maxImages = 3

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// Scraper extracts structured data from a web page following a prompt.
// The result is the decoded JSON answer.
type Scraper interface {
	Scrape(ctx context.Context, pageURL, prompt string) (any, error)
}

// SmartScraper delegates page understanding to a Scraper.
type SmartScraper struct {
	Scraper Scraper
}

// Name implements Strategy.
func (s *SmartScraper) Name() string { return SourceSmart }

// Lookup implements Strategy.
func (s *SmartScraper) Lookup(ctx context.Context, query string) (model.ResearchResult, error) {
	page := ReferencePage(query)
	raw, err := s.Scraper.Scrape(ctx, page, smartPrompt)
	if err != nil {
		return model.ResearchResult{}, fmt.Errorf("scraping %s: %w", page, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok || len(obj) == 0 {
		return model.ResearchResult{}, fmt.Errorf("scraping %s: unexpected result %T", page, raw)
	}
	return normalizeSmart(obj, query)
}

// ReferencePage picks the page the smart scraper reads for a query.
func ReferencePage(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "sony") && strings.Contains(q, "a7r"):
		return PageSonyA7RV
	case strings.Contains(q, "nikon") && strings.Contains(q, "z9"):
		return PageNikonZ9
	}
	return PageCanonEOSR5
}

func normalizeSmart(obj map[string]any, query string) (model.ResearchResult, error) {
	if c, present := obj["content"]; present {
		content, ok := c.(map[string]any)
		if !ok {
			return model.ResearchResult{}, errors.New("content is not an object")
		}
		obj = content
	}

	images := filterImages(obj["images"])
	if len(images) == 0 {
		images = extract.SampleImages(parseQuery(query))
	}
	if len(images) > maxImages {
		images = images[:maxImages]
	}
	if len(images) == 0 {
		images = []string{model.NoImagePlaceholder}
	}

	return model.ResearchResult{
		Specifications: normalizeSpecs(obj["specifications"]),
		Pricing:        normalizePricing(obj["pricing"]),
		Images:         images,
		Confidence:     normalizeConfidence(obj["confidence"]),
	}, nil
}

func isNA(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "NA")
}

func normalizeSpecs(v any) map[string]any {
	switch specs := v.(type) {
	case string:
		if !isNA(specs) {
			return map[string]any{"description": specs}
		}
	case map[string]any:
		if len(specs) > 0 {
			return specs
		}
	}
	return map[string]any{"note": "No specifications found"}
}

func normalizePricing(v any) map[string]any {
	switch pricing := v.(type) {
	case string:
		if !isNA(pricing) {
			return map[string]any{"market_price": pricing}
		}
	case float64:
		return map[string]any{"market_price": strconv.FormatFloat(pricing, 'f', -1, 64)}
	case map[string]any:
		if len(pricing) > 0 {
			return pricing
		}
	}
	return map[string]any{"market_price": defaultPricing}
}

func normalizeConfidence(v any) float64 {
	var c float64
	switch conf := v.(type) {
	case float64:
		c = conf
	case string:
		c, _ = strconv.ParseFloat(strings.TrimSpace(conf), 64)
	}
	if c <= 0 {
		return ConfidenceSmart
	}
	return min(c, 1)
}

// filterImages keeps entries that look like image URLs.
func filterImages(v any) []string {
	var candidates []any
	switch images := v.(type) {
	case string:
		candidates = []any{images}
	case []any:
		candidates = images
	}

	var out []string
	for _, c := range candidates {
		u, ok := c.(string)
		if !ok || u == "" {
			continue
		}
		if looksLikeImage(u) {
			out = append(out, u)
		}
	}
	return out
}

func looksLikeImage(u string) bool {
	l := strings.ToLower(u)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(l, ext) {
			return true
		}
	}
	return strings.Contains(l, "image") || strings.Contains(l, "photo") || strings.Contains(l, "product")
}
