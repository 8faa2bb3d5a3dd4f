package pipeline

import (
	"strings"

	"github.com/erazemk/camorent/internal/model"
)

// Self-reported stage confidences.
const (
	AudioTranscriptionConfidence = 0.9
	TextTranscriptionConfidence  = 1.0
	ExtractionConfidence         = 0.8
)

// Assemble combines the stage outputs into the response payload and the
// pre-filled form.
func Assemble(transcript string, ext model.Extraction, res model.ResearchResult, transcriptionConfidence float64) model.ProcessResult {
	return model.ProcessResult{
		Transcript:    transcript,
		ExtractedData: ext,
		ResearchData:  res,
		ConfidenceScores: model.ConfidenceScores{
			Transcription: transcriptionConfidence,
			Extraction:    ExtractionConfidence,
			Research:      res.Confidence,
		},
		FormData: formData(ext, res),
	}
}

func formData(ext model.Extraction, res model.ResearchResult) model.FormData {
	condition := ext.Condition
	if !model.ValidCondition(condition) {
		condition = model.ConditionGood
	}

	images := res.Images
	if res.OnlyPlaceholderImage() {
		images = ext.SampleImages
	}
	images = append([]string{}, images...)

	var primary *string
	if len(images) > 0 {
		primary = &images[0]
	}

	specs := res.Specifications
	if specs == nil {
		specs = map[string]any{}
	}

	return model.FormData{
		Name:           strings.TrimSpace(ext.Brand + " " + ext.Model),
		Brand:          ext.Brand,
		Model:          ext.Model,
		Category:       model.CategoryForEquipmentType(ext.EquipmentType),
		Condition:      condition,
		Description:    ext.Description,
		Specifications: specs,
		EstimatedValue: ext.EstimatedValue,
		CurrentValue:   ext.EstimatedValue,
		Images:         images,
		PrimaryImage:   primary,
	}
}
