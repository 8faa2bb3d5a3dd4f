package research

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultScrapeGraphURL = "https://api.scrapegraphai.com"

// ScrapeGraphClient calls the hosted ScrapeGraphAI smart scraper.
type ScrapeGraphClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewScrapeGraphClient returns a client with a 10s timeout.
func NewScrapeGraphClient(apiKey, baseURL string) *ScrapeGraphClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultScrapeGraphURL
	}
	return &ScrapeGraphClient{
		APIKey:     strings.TrimSpace(apiKey),
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type smartScraperRequest struct {
	WebsiteURL string `json:"website_url"`
	UserPrompt string `json:"user_prompt"`
}

type smartScraperResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Result    any    `json:"result"`
	Error     string `json:"error"`
}

// Scrape implements Scraper.
func (c *ScrapeGraphClient) Scrape(ctx context.Context, pageURL, prompt string) (any, error) {
	if c.APIKey == "" {
		return nil, errors.New("scrapegraph: api key required")
	}
	endpoint, err := url.JoinPath(c.BaseURL, "v1/smartscraper")
	if err != nil {
		return nil, fmt.Errorf("scrapegraph: build url: %w", err)
	}
	body, err := json.Marshal(smartScraperRequest{WebsiteURL: pageURL, UserPrompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("scrapegraph: encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("scrapegraph: new request: %w", err)
	}
	req.Header.Set("SGAI-APIKEY", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrapegraph: http error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("scrapegraph: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("scrapegraph: http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed smartScraperResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("scrapegraph: decode response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("scrapegraph: %s", parsed.Error)
	}
	if strings.EqualFold(parsed.Status, "failed") {
		return nil, fmt.Errorf("scrapegraph: request %s failed", parsed.RequestID)
	}
	return parsed.Result, nil
}
