package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/erazemk/camorent/internal/pipeline"
)

// sniffLen is how much of an upload is read to detect its type.
const sniffLen = 3072

// defaultAudioExt names temp files for types without a known extension.
const defaultAudioExt = ".mp3"

// multipartMemory is how much of a multipart form is kept in memory before
// spilling to disk.
const multipartMemory = 8 << 20

// ProcessHandler runs uploaded clips and sample text through the pipeline.
type ProcessHandler struct {
	Pipeline      *pipeline.Pipeline
	MaxAudioBytes int64
}

type sampleRequest struct {
	SampleText string `json:"sample_text"`
}

// ProcessAudio handles POST /api/process-audio.
func (h *ProcessHandler) ProcessAudio(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxAudioBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Audio file exceeds %d bytes", tooLarge.Limit))
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			jsonError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, _, err := r.FormFile("audio")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	path, err := saveAudio(file)
	if errors.Is(err, errUnsupportedAudio) {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		serverError(w, r, "Failed to save audio", err)
		return
	}
	defer os.Remove(path)

	result, err := h.Pipeline.ProcessAudio(r.Context(), path)
	if err != nil {
		h.pipelineError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, result)
}

// ProcessSample handles POST /api/process-sample.
func (h *ProcessHandler) ProcessSample(w http.ResponseWriter, r *http.Request) {
	var req sampleRequest
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.SampleText) == "" {
		jsonError(w, http.StatusBadRequest, "No sample text provided")
		return
	}

	result, err := h.Pipeline.ProcessText(r.Context(), req.SampleText)
	if err != nil {
		h.pipelineError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, result)
}

func (h *ProcessHandler) pipelineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pipeline.ErrTranscription):
		serverError(w, r, "Failed to transcribe audio", err)
	case errors.Is(err, pipeline.ErrExtraction):
		serverError(w, r, "Failed to extract equipment data", err)
	default:
		serverError(w, r, "Processing failed", err)
	}
}

var errUnsupportedAudio = errors.New("unsupported audio format")

// saveAudio checks that an upload is audio or video and copies it to a temp
// file named with the detected extension. The caller removes the file.
func saveAudio(file io.Reader) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !isAudio(mt) {
		return "", fmt.Errorf("%w: %s", errUnsupportedAudio, mt.String())
	}

	ext := mt.Extension()
	if ext == "" {
		ext = defaultAudioExt
	}
	tmp, err := os.CreateTemp("", "camorent-audio-*"+ext)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := io.Copy(tmp, io.MultiReader(bytes.NewReader(head), file)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	slog.Info("audio saved", "type", mt.String(), "path", tmp.Name())
	return tmp.Name(), nil
}

func isAudio(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		s := m.String()
		if strings.HasPrefix(s, "audio/") || strings.HasPrefix(s, "video/") || s == "application/ogg" {
			return true
		}
	}
	return false
}
