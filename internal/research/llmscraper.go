package research

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/k3a/html2text"
	"golang.org/x/net/html"

	"github.com/erazemk/camorent/internal/llm"
)

// maxPageText bounds the page text sent to the model.
const maxPageText = 12000

// LLMScraper reads a page itself and asks a chat model to extract the data.
type LLMScraper struct {
	Client     *llm.Client
	HTTPClient *http.Client
}

// NewLLMScraper returns a scraper that fetches pages with a 10s timeout.
func NewLLMScraper(client *llm.Client) *LLMScraper {
	return &LLMScraper{Client: client, HTTPClient: &http.Client{Timeout: 10 * time.Second}}
}

// Scrape implements Scraper.
func (s *LLMScraper) Scrape(ctx context.Context, pageURL, prompt string) (any, error) {
	doc, err := fetchPage(ctx, s.HTTPClient, pageURL, true)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	var answer any
	if err := s.Client.CompleteObject(ctx, prompt, pagePrompt(pageURL, doc), &answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// pagePrompt reduces a page to its text and image URLs.
func pagePrompt(pageURL string, doc *html.Node) string {
	base, _ := url.Parse(pageURL)

	var images []string
	seen := map[string]bool{}
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "img" {
			return
		}
		src := absoluteURL(base, imageSource(n))
		if strings.HasPrefix(src, "http") && !seen[src] {
			seen[src] = true
			images = append(images, src)
		}
	})

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		buf.Reset()
	}
	text := truncate(strings.TrimSpace(html2text.HTML2Text(buf.String())), maxPageText)

	var b strings.Builder
	fmt.Fprintf(&b, "Page URL: %s\n\n", pageURL)
	if len(images) > 0 {
		b.WriteString("Image URLs on the page:\n")
		for _, img := range images {
			b.WriteString(img)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	b.WriteString("Page text:\n")
	b.WriteString(text)
	return b.String()
}
