package model

// ExtractionMode tags which extractor produced an Extraction.
type ExtractionMode string

// Extraction modes.
const (
	ExtractionModel   ExtractionMode = "model"
	ExtractionPattern ExtractionMode = "pattern"
)

// Placeholder images returned when research finds nothing usable.
const (
	NoImagePlaceholder    = "https://via.placeholder.com/300x200?text=No+Image+Found"
	ErrorImagePlaceholder = "https://via.placeholder.com/300x200?text=Error+Loading+Image"
)

// Extraction holds the structured fields pulled out of a transcript.
// It is produced per request and never persisted.
type Extraction struct {
	EquipmentType  string         `json:"equipment_type"`
	Brand          string         `json:"brand"`
	Model          string         `json:"model"`
	Condition      string         `json:"condition"`
	Description    string         `json:"description"`
	EstimatedValue Money          `json:"estimated_value"`
	WebSearchQuery string         `json:"web_search_query"`
	SampleImages   []string       `json:"sample_images"`
	Mode           ExtractionMode `json:"mode"`
}

// ResearchResult is what web research found for a search query.
type ResearchResult struct {
	Specifications map[string]any `json:"specifications"`
	Pricing        map[string]any `json:"pricing"`
	Images         []string       `json:"images"`
	Confidence     float64        `json:"confidence"`
	Source         string         `json:"source,omitempty"`
}

// OnlyPlaceholderImage reports whether research produced no real image.
func (r ResearchResult) OnlyPlaceholderImage() bool {
	return len(r.Images) == 0 || (len(r.Images) == 1 && r.Images[0] == NoImagePlaceholder)
}

// ConfidenceScores are the self-reported per-stage confidences.
type ConfidenceScores struct {
	Transcription float64 `json:"transcription"`
	Extraction    float64 `json:"extraction"`
	Research      float64 `json:"research"`
}

// FormData pre-populates the add-item form in the UI.
type FormData struct {
	Name           string         `json:"name"`
	Brand          string         `json:"brand"`
	Model          string         `json:"model"`
	Category       string         `json:"category"`
	Condition      string         `json:"condition"`
	Description    string         `json:"description"`
	Specifications map[string]any `json:"specifications"`
	EstimatedValue Money          `json:"estimated_value"`
	CurrentValue   Money          `json:"current_value"`
	Images         []string       `json:"images"`
	PrimaryImage   *string        `json:"primary_image"`
}

// ProcessResult is the full response of the audio/text pipeline.
type ProcessResult struct {
	Transcript       string           `json:"transcript"`
	ExtractedData    Extraction       `json:"extracted_data"`
	ResearchData     ResearchResult   `json:"research_data"`
	ConfidenceScores ConfidenceScores `json:"confidence_scores"`
	FormData         FormData         `json:"form_data"`
}
