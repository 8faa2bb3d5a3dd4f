// Package pipeline turns a recorded or typed equipment description into a
// catalog entry proposal.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/erazemk/camorent/internal/extract"
	"github.com/erazemk/camorent/internal/metrics"
	"github.com/erazemk/camorent/internal/model"
	"github.com/erazemk/camorent/internal/research"
	"github.com/erazemk/camorent/internal/transcribe"
)

// Stage errors. Research never aborts a request.
var (
	ErrTranscription = errors.New("transcription failed")
	ErrExtraction    = errors.New("extraction failed")
)

// Stage names used in logs and metrics.
const (
	StageTranscription = "transcription"
	StageExtraction    = "extraction"
	StageResearch      = "research"
)

// Pipeline runs transcription, extraction and research in sequence.
type Pipeline struct {
	Transcriber transcribe.Transcriber
	Extractor   extract.Extractor
	Researcher  research.Researcher
	Metrics     *metrics.Metrics
}

// ProcessAudio transcribes the clip at path and processes the transcript.
func (p *Pipeline) ProcessAudio(ctx context.Context, path string) (model.ProcessResult, error) {
	start := time.Now()
	transcript, err := p.Transcriber.Transcribe(ctx, path)
	p.Metrics.ObserveStage(StageTranscription, time.Since(start))
	if err != nil {
		p.Metrics.StageFailed(StageTranscription)
		return model.ProcessResult{}, fmt.Errorf("%w: %w", ErrTranscription, err)
	}
	slog.Info("clip transcribed", "chars", len(transcript), "duration", time.Since(start))

	return p.process(ctx, transcript, AudioTranscriptionConfidence)
}

// ProcessText processes a typed description as if it had been transcribed.
func (p *Pipeline) ProcessText(ctx context.Context, text string) (model.ProcessResult, error) {
	return p.process(ctx, text, TextTranscriptionConfidence)
}

func (p *Pipeline) process(ctx context.Context, transcript string, transcriptionConfidence float64) (model.ProcessResult, error) {
	start := time.Now()
	ext, err := p.Extractor.Extract(ctx, transcript)
	p.Metrics.ObserveStage(StageExtraction, time.Since(start))
	if err != nil {
		p.Metrics.StageFailed(StageExtraction)
		return model.ProcessResult{}, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	slog.Info("fields extracted", "mode", ext.Mode, "brand", ext.Brand, "model", ext.Model)

	start = time.Now()
	res := p.Researcher.Research(ctx, ext.WebSearchQuery)
	p.Metrics.ObserveStage(StageResearch, time.Since(start))
	slog.Info("research finished", "query", ext.WebSearchQuery, "source", res.Source, "confidence", res.Confidence)

	return Assemble(transcript, ext, res, transcriptionConfidence), nil
}
