// Package transcribe turns recorded clips into text.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrEmptyTranscript is returned when the service answers without any text.
var ErrEmptyTranscript = errors.New("empty transcript")

// Transcriber converts an audio file on disk into text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

const (
	defaultBaseURL  = "https://api.openai.com/v1"
	defaultModel    = "whisper-1"
	defaultLanguage = "en"
	defaultTimeout  = 120 * time.Second
)

// WhisperConfig configures a WhisperClient.
type WhisperConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	Language string
	Timeout  time.Duration
}

// WhisperClient calls the OpenAI audio transcription endpoint.
type WhisperClient struct {
	cfg        WhisperConfig
	httpClient *http.Client
}

// NewWhisperClient returns a client with defaults filled in. A nil
// httpClient gets one with the configured timeout.
func NewWhisperClient(cfg WhisperConfig, httpClient *http.Client) *WhisperClient {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &WhisperClient{cfg: cfg, httpClient: httpClient}
}

type transcriptionResponse struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Transcribe uploads the clip at path and returns the recognized text.
// There is exactly one attempt.
func (c *WhisperClient) Transcribe(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", errors.New("transcribe: api key required")
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("transcribe: opening clip: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("transcribe: creating form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("transcribe: copying clip: %w", err)
	}
	for field, value := range map[string]string{"model": c.cfg.Model, "language": c.cfg.Language} {
		if err := mw.WriteField(field, value); err != nil {
			return "", fmt.Errorf("transcribe: writing %s: %w", field, err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("transcribe: closing form: %w", err)
	}

	endpoint, err := url.JoinPath(c.cfg.BaseURL, "audio/transcriptions")
	if err != nil {
		return "", fmt.Errorf("transcribe: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("transcribe: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe: http error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("transcribe: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("transcribe: http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("transcribe: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("transcribe: api error: %s", parsed.Error.Message)
	}

	text := strings.TrimSpace(parsed.Text)
	if text == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}
