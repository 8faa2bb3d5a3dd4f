package research

import (
	"context"
	"slices"
	"strings"

	"github.com/erazemk/camorent/internal/extract"
	"github.com/erazemk/camorent/internal/model"
)

type knownModel struct {
	key   string
	specs map[string]string
	price string
}

var knownSpecs = map[string][]knownModel{
	"canon": {
		{"eos r5", map[string]string{
			"sensor":     "45MP Full-Frame CMOS",
			"resolution": "8192 x 5464",
			"video":      "8K RAW at 29.97fps",
			"autofocus":  "1053 AF points",
			"iso":        "100-51200 (expandable to 102400)",
			"battery":    "LP-E6NH, approx. 320 shots",
		}, "₹3,50,000 - ₹4,00,000"},
		{"eos r6", map[string]string{
			"sensor":     "20.1MP Full-Frame CMOS",
			"resolution": "5472 x 3648",
			"video":      "4K up to 60fps",
			"autofocus":  "1053 AF points",
			"iso":        "100-102400",
			"battery":    "LP-E6NH, approx. 360 shots",
		}, "₹2,00,000 - ₹2,50,000"},
	},
	"sony": {
		{"a7r v", map[string]string{
			"sensor":     "61MP Full-Frame Exmor R CMOS",
			"resolution": "9504 x 6336",
			"video":      "8K 24/25fps, 4K 60fps",
			"autofocus":  "693 phase-detect points",
			"iso":        "100-32000 (expandable to 102400)",
			"battery":    "NP-FZ100, approx. 440 shots",
		}, "₹3,80,000 - ₹4,20,000"},
		{"a7 iv", map[string]string{
			"sensor":     "33MP Full-Frame Exmor R CMOS",
			"resolution": "7008 x 4672",
			"video":      "4K 60fps",
			"autofocus":  "759 phase-detect points",
			"iso":        "100-51200 (expandable to 204800)",
			"battery":    "NP-FZ100, approx. 520 shots",
		}, "₹2,50,000 - ₹3,00,000"},
	},
	"nikon": {
		{"z9", map[string]string{
			"sensor":     "45.7MP Full-Frame BSI CMOS",
			"resolution": "8256 x 5504",
			"video":      "8K 30fps, 4K 120fps",
			"autofocus":  "493 phase-detect points",
			"iso":        "64-25600 (expandable to 102400)",
			"battery":    "EN-EL18d, approx. 740 shots",
		}, "₹4,50,000 - ₹5,00,000"},
	},
}

// placeholderSpecKeys mark specification maps that carry no real data.
var placeholderSpecKeys = map[string]bool{"note": true, "error": true, "search_query": true}

// KnownSpecs fills in curated data for popular models when Next found
// nothing real. A failed lookup is passed through unchanged.
type KnownSpecs struct {
	Next Researcher
}

// Research implements Researcher.
func (k KnownSpecs) Research(ctx context.Context, query string) model.ResearchResult {
	res := k.Next.Research(ctx, query)
	if res.Source == SourceFailed || hasRealSpecs(res.Specifications) {
		return res
	}

	brand, modelName := parseQuery(query)
	known, ok := lookupKnown(brand, modelName)
	if !ok {
		return res
	}

	specs := make(map[string]any, len(known.specs))
	for name, v := range known.specs {
		specs[name] = v
	}
	res.Specifications = specs
	res.Pricing = map[string]any{"market_price": known.price}
	res.Confidence = ConfidenceCurated
	res.Source = SourceKnown
	if onlyPlaceholders(res.Images) {
		res.Images = extract.SampleImages(brand, modelName)
	}
	return res
}

// lookupKnown matches a curated key only when all of its words appear, in
// order and whole, in the model name. "eos r5 mark ii" matches "eos r5";
// "eos" and "a7" match nothing.
func lookupKnown(brand, modelName string) (knownModel, bool) {
	words := strings.Fields(modelName)
	for _, m := range knownSpecs[brand] {
		if containsWords(words, strings.Fields(m.key)) {
			return m, true
		}
	}
	return knownModel{}, false
}

func containsWords(words, key []string) bool {
	if len(key) == 0 {
		return false
	}
	for i := 0; i+len(key) <= len(words); i++ {
		if slices.Equal(words[i:i+len(key)], key) {
			return true
		}
	}
	return false
}

func hasRealSpecs(specs map[string]any) bool {
	for k := range specs {
		if !placeholderSpecKeys[k] {
			return true
		}
	}
	return false
}

func onlyPlaceholders(images []string) bool {
	for _, img := range images {
		if img != model.NoImagePlaceholder && img != model.ErrorImagePlaceholder {
			return false
		}
	}
	return true
}
