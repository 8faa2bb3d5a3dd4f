package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/erazemk/camorent/internal/extract"
	"github.com/erazemk/camorent/internal/model"
	"github.com/erazemk/camorent/internal/research"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f fakeTranscriber) Transcribe(context.Context, string) (string, error) {
	return f.text, f.err
}

type fakeExtractor struct {
	err error
}

func (f fakeExtractor) Extract(ctx context.Context, transcript string) (model.Extraction, error) {
	if f.err != nil {
		return model.Extraction{}, f.err
	}
	return extract.PatternExtractor{}.Extract(ctx, transcript)
}

type fakeResearcher struct {
	res     model.ResearchResult
	queries []string
}

func (f *fakeResearcher) Research(_ context.Context, query string) model.ResearchResult {
	f.queries = append(f.queries, query)
	return f.res
}

func placeholderResearch() *fakeResearcher {
	return &fakeResearcher{res: model.ResearchResult{
		Specifications: map[string]any{"note": "Specifications not found in search results"},
		Pricing:        map[string]any{"market_price": "Contact manufacturer for pricing"},
		Images:         []string{model.NoImagePlaceholder},
		Confidence:     0.4,
	}}
}

func TestProcessText(t *testing.T) {
	r := placeholderResearch()
	p := &Pipeline{Extractor: fakeExtractor{}, Researcher: r}

	got, err := p.ProcessText(context.Background(), "Canon EOS R5 in excellent condition")
	require.NoError(t, err)

	assert.Equal(t, "Canon EOS R5 in excellent condition", got.Transcript)
	assert.Equal(t, "Canon", got.ExtractedData.Brand)
	assert.Equal(t, "camera", got.ExtractedData.EquipmentType)
	assert.Equal(t, []string{"Canon EOS specifications"}, r.queries)

	assert.Equal(t, model.ConfidenceScores{Transcription: 1.0, Extraction: 0.8, Research: 0.4}, got.ConfidenceScores)

	form := got.FormData
	assert.Equal(t, "Canon EOS", form.Name)
	assert.Equal(t, model.CategoryCameras, form.Category)
	assert.Equal(t, model.ConditionGood, form.Condition)
	assert.True(t, form.EstimatedValue.Equal(form.CurrentValue.Decimal))
	assert.Equal(t, got.ExtractedData.SampleImages, form.Images)
	require.NotNil(t, form.PrimaryImage)
	assert.Equal(t, form.Images[0], *form.PrimaryImage)

	// research data is passed through untouched
	assert.Equal(t, []string{model.NoImagePlaceholder}, got.ResearchData.Images)
}

func TestProcessAudio(t *testing.T) {
	p := &Pipeline{
		Transcriber: fakeTranscriber{text: "Sony A7 lens kit"},
		Extractor:   fakeExtractor{},
		Researcher:  placeholderResearch(),
	}

	got, err := p.ProcessAudio(context.Background(), "clip.mp3")
	require.NoError(t, err)
	assert.InDelta(t, AudioTranscriptionConfidence, got.ConfidenceScores.Transcription, 1e-9)
	assert.Equal(t, model.CategoryLenses, got.FormData.Category)
}

func TestProcessAudioTranscriptionFailure(t *testing.T) {
	r := placeholderResearch()
	p := &Pipeline{
		Transcriber: fakeTranscriber{err: errors.New("upstream 500")},
		Extractor:   fakeExtractor{},
		Researcher:  r,
	}

	_, err := p.ProcessAudio(context.Background(), "clip.mp3")
	assert.ErrorIs(t, err, ErrTranscription)
	assert.Empty(t, r.queries)
}

func TestProcessExtractionFailure(t *testing.T) {
	r := placeholderResearch()
	p := &Pipeline{Extractor: fakeExtractor{err: errors.New("bad json")}, Researcher: r}

	_, err := p.ProcessText(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrExtraction)
	assert.NotErrorIs(t, err, ErrTranscription)
	assert.Empty(t, r.queries)
}

func TestProcessEmptyQuery(t *testing.T) {
	p := &Pipeline{
		Extractor:  emptyQueryExtractor{},
		Researcher: research.NewChain(nil),
	}

	got, err := p.ProcessText(context.Background(), "something")
	require.NoError(t, err)
	assert.InDelta(t, 0.1, got.ResearchData.Confidence, 1e-9)
	assert.NotEmpty(t, got.ResearchData.Images)
}

type emptyQueryExtractor struct{}

func (emptyQueryExtractor) Extract(context.Context, string) (model.Extraction, error) {
	return model.Extraction{Condition: "good", EstimatedValue: model.MoneyFromInt(1)}, nil
}

func TestAssembleUsesResearchImages(t *testing.T) {
	ext := model.Extraction{
		EquipmentType:  "tripod",
		Brand:          "Manfrotto",
		Condition:      "excellent",
		EstimatedValue: model.MoneyFromInt(12000),
		SampleImages:   []string{"https://sample/1.jpg"},
	}
	res := model.ResearchResult{
		Specifications: map[string]any{"weight": "2 kg"},
		Images:         []string{"https://shop/a.jpg", "https://shop/b.jpg"},
		Confidence:     0.6,
	}

	got := Assemble("t", ext, res, 0.9)
	assert.Equal(t, "Manfrotto", got.FormData.Name)
	assert.Equal(t, model.CategorySupport, got.FormData.Category)
	assert.Equal(t, model.ConditionGood, got.FormData.Condition)
	assert.Equal(t, res.Images, got.FormData.Images)
	assert.Equal(t, "https://shop/a.jpg", *got.FormData.PrimaryImage)
	assert.Equal(t, res.Specifications, got.FormData.Specifications)
	assert.InDelta(t, 0.6, got.ConfidenceScores.Research, 1e-9)
}

func TestAssembleNoImages(t *testing.T) {
	got := Assemble("t", model.Extraction{}, model.ResearchResult{}, 1)
	assert.NotNil(t, got.FormData.Images)
	assert.Empty(t, got.FormData.Images)
	assert.Nil(t, got.FormData.PrimaryImage)
	assert.NotNil(t, got.FormData.Specifications)
	assert.Equal(t, model.CategoryCameras, got.FormData.Category)
}
