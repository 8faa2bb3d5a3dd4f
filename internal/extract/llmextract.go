package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/camorent/internal/llm"
	"github.com/erazemk/camorent/internal/model"
)

const systemPrompt = `You are an equipment cataloger. Extract structured data from equipment descriptions and return only valid JSON.

Extract the following fields from the equipment description:
- equipment_type: Type of equipment (camera, lens, lighting, etc.)
- brand: Manufacturer name (Canon, Sony, Nikon, etc.)
- model: Model identifier
- condition: Equipment condition (new, good, fair, damaged)
- description: Detailed description
- estimated_value: Estimated value in INR
- web_search_query: Search query for finding specifications

Return only valid JSON with these exact field names.`

// ModelExtractor asks a chat model for the fields.
type ModelExtractor struct {
	client *llm.Client
}

// NewModelExtractor returns an extractor backed by client.
func NewModelExtractor(client *llm.Client) *ModelExtractor {
	return &ModelExtractor{client: client}
}

// modelAnswer is the shape the model is asked to return.
type modelAnswer struct {
	EquipmentType  string      `json:"equipment_type"`
	Brand          string      `json:"brand"`
	Model          string      `json:"model"`
	Condition      string      `json:"condition"`
	Description    string      `json:"description"`
	EstimatedValue looseAmount `json:"estimated_value"`
	WebSearchQuery string      `json:"web_search_query"`
}

// Extract implements Extractor.
func (e *ModelExtractor) Extract(ctx context.Context, transcript string) (model.Extraction, error) {
	var answer modelAnswer
	if err := e.client.CompleteObject(ctx, systemPrompt, "Extract equipment data from: "+transcript, &answer); err != nil {
		return model.Extraction{}, fmt.Errorf("extracting fields: %w", err)
	}

	brand := strings.TrimSpace(answer.Brand)
	modelName := strings.TrimSpace(answer.Model)
	query := strings.TrimSpace(answer.WebSearchQuery)
	if query == "" {
		query = SearchQuery(brand, modelName)
	}

	return model.Extraction{
		EquipmentType:  strings.ToLower(strings.TrimSpace(answer.EquipmentType)),
		Brand:          brand,
		Model:          modelName,
		Condition:      normalizeCondition(answer.Condition),
		Description:    strings.TrimSpace(answer.Description),
		EstimatedValue: model.NewMoney(answer.EstimatedValue.Decimal),
		WebSearchQuery: query,
		SampleImages:   SampleImages(brand, modelName),
		Mode:           model.ExtractionModel,
	}, nil
}

// looseAmount accepts a JSON number or a string such as "₹3,50,000".
// Anything unparseable decodes as zero.
type looseAmount struct {
	decimal.Decimal
}

func (a *looseAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	d, err := decimal.NewFromString(cleanAmount(raw))
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// cleanAmount keeps digits, one decimal point and a leading minus sign.
func cleanAmount(s string) string {
	var b strings.Builder
	seenDot := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
