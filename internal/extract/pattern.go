package extract

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erazemk/camorent/internal/model"
)

// Brands recognized by the pattern extractor, in match order.
var knownBrands = []string{"canon", "sony", "nikon", "fuji", "panasonic", "olympus", "blackmagic", "red", "arri"}

var modelToken = regexp.MustCompile(`[A-Za-z0-9\-]+`)

// DefaultEstimatedValue is the value in INR assumed without a model.
var DefaultEstimatedValue = model.MoneyFromInt(50000)

// PatternExtractor finds fields with keyword rules. It never fails.
type PatternExtractor struct{}

// Extract implements Extractor.
func (PatternExtractor) Extract(_ context.Context, transcript string) (model.Extraction, error) {
	lower := strings.ToLower(transcript)

	var brand, modelName string
	for _, b := range knownBrands {
		pos := strings.Index(lower, b)
		if pos < 0 {
			continue
		}
		brand = cases.Title(language.Und).String(b)

		// Lowercasing can change byte lengths outside ASCII.
		rest := lower[pos+len(b):]
		if len(lower) == len(transcript) {
			rest = transcript[pos+len(b):]
		}
		modelName = modelToken.FindString(rest)
		break
	}

	return model.Extraction{
		EquipmentType:  equipmentType(lower),
		Brand:          brand,
		Model:          modelName,
		Condition:      model.ConditionGood,
		Description:    transcript,
		EstimatedValue: DefaultEstimatedValue,
		WebSearchQuery: SearchQuery(brand, modelName),
		SampleImages:   SampleImages(brand, modelName),
		Mode:           model.ExtractionPattern,
	}, nil
}

func equipmentType(lower string) string {
	switch {
	case strings.Contains(lower, "lens"):
		return "lens"
	case strings.Contains(lower, "light"):
		return "lighting"
	case strings.Contains(lower, "microphone"), strings.Contains(lower, "audio"):
		return "audio"
	}
	return "camera"
}
