// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Keys that ship in sample env files and must not enable the model-backed paths.
var placeholderKeys = map[string]bool{
	"your-openai-api-key-here": true,
	"test-key-fallback-mode":   true,
}

// scrapeBudget bounds the time research spends outside model calls: the
// smart-scrape page fetch plus the paced basic search and page reads.
const scrapeBudget = 40 * time.Second

// Config holds runtime configuration for the service.
type Config struct {
	DBPath  string `envconfig:"CAMORENT_DB" default:"camorent.db"`
	Addr    string `envconfig:"CAMORENT_ADDR" default:":5001"`
	LogPath string `envconfig:"CAMORENT_LOG"`

	ReadTimeout     time.Duration `envconfig:"CAMORENT_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"CAMORENT_WRITE_TIMEOUT" default:"180s"`
	ShutdownTimeout time.Duration `envconfig:"CAMORENT_SHUTDOWN_TIMEOUT" default:"10s"`

	OpenAIKey          string        `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL      string        `envconfig:"CAMORENT_OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	ChatModel          string        `envconfig:"CAMORENT_CHAT_MODEL" default:"gpt-4o-mini"`
	TranscriptionModel string        `envconfig:"CAMORENT_TRANSCRIPTION_MODEL" default:"whisper-1"`
	OpenAITimeout      time.Duration `envconfig:"CAMORENT_OPENAI_TIMEOUT" default:"30s"`

	ScrapeGraphKey     string `envconfig:"SCRAPEGRAPH_API_KEY"`
	ScrapeGraphBaseURL string `envconfig:"CAMORENT_SCRAPEGRAPH_BASE_URL" default:"https://api.scrapegraphai.com"`
	// SmartScrapeLLM enables the self-hosted smart scraper when no ScrapeGraph
	// key is set but a model key is.
	SmartScrapeLLM bool   `envconfig:"CAMORENT_SMART_SCRAPE_LLM" default:"false"`
	SearchURL      string `envconfig:"CAMORENT_SEARCH_URL" default:"https://www.google.com/search"`

	ResearchCacheTTL time.Duration `envconfig:"CAMORENT_RESEARCH_CACHE_TTL" default:"6h"`
	RedisAddr        string        `envconfig:"CAMORENT_REDIS_ADDR"`

	PasswordScheme string `envconfig:"CAMORENT_PASSWORD_SCHEME" default:"sha256"`

	ProcessRateLimit int   `envconfig:"CAMORENT_PROCESS_RATE_LIMIT" default:"30"`
	MaxAudioBytes    int64 `envconfig:"CAMORENT_MAX_AUDIO_BYTES" default:"26214400"`
	MaxImageBytes    int64 `envconfig:"CAMORENT_MAX_IMAGE_BYTES" default:"10485760"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	switch c.PasswordScheme {
	case "sha256", "bcrypt":
	default:
		return fmt.Errorf("unknown password scheme %q", c.PasswordScheme)
	}
	if c.ProcessRateLimit < 0 {
		return errors.New("process rate limit must not be negative")
	}
	if c.MaxAudioBytes < 1 || c.MaxImageBytes < 1 {
		return errors.New("upload limits must be positive")
	}
	if c.WriteTimeout <= c.PipelineBudget() {
		return fmt.Errorf("write timeout %s must exceed the processing budget %s", c.WriteTimeout, c.PipelineBudget())
	}
	return nil
}

// PipelineBudget is the longest a processing request can take: transcription,
// extraction and a model-backed smart scrape, plus the scraping itself.
func (c *Config) PipelineBudget() time.Duration {
	return 3*c.OpenAITimeout + scrapeBudget
}

// HasModelKey reports whether a usable OpenAI key is configured.
func (c *Config) HasModelKey() bool {
	key := strings.TrimSpace(c.OpenAIKey)
	return key != "" && !placeholderKeys[key]
}

// HasScrapeGraphKey reports whether the hosted smart scraper can be used.
func (c *Config) HasScrapeGraphKey() bool {
	return strings.TrimSpace(c.ScrapeGraphKey) != ""
}
