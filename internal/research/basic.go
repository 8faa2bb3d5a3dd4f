package research

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/erazemk/camorent/internal/llm"
	"github.com/erazemk/camorent/internal/model"
)

const (
	defaultSearchURL = "https://www.google.com/search"
	searchResults    = 3
	maxPageImages    = 5
	maxSnippet       = 100
)

var (
	positiveImageHints = []string{"product", "camera", "large", "big", "full", "detail", "1000", "800", "prod", "item", "goods"}
	negativeImageHints = []string{"logo", "icon", "thumb", "avatar", "banner", "ad", "pixel"}
)

// BasicScraper searches the web and scans the top results itself.
type BasicScraper struct {
	SearchURL     string
	HTTPClient    *http.Client
	SearchTimeout time.Duration
	PageTimeout   time.Duration
	SearchDelay   time.Duration
	PageDelay     time.Duration
	Sleep         func(context.Context, time.Duration) error
}

// NewBasicScraper returns a scraper with the default pacing and timeouts.
func NewBasicScraper(searchURL string) *BasicScraper {
	if strings.TrimSpace(searchURL) == "" {
		searchURL = defaultSearchURL
	}
	return &BasicScraper{
		SearchURL:     searchURL,
		HTTPClient:    &http.Client{},
		SearchTimeout: 10 * time.Second,
		PageTimeout:   5 * time.Second,
		SearchDelay:   time.Second,
		PageDelay:     500 * time.Millisecond,
		Sleep:         llm.Sleep,
	}
}

// Name implements Strategy.
func (s *BasicScraper) Name() string { return SourceBasic }

// pageFindings accumulates what the result pages yielded.
type pageFindings struct {
	specs   map[string]any
	pricing map[string]any
	images  []string
}

// Lookup implements Strategy. Only a failed search is an error; broken
// result pages are skipped.
func (s *BasicScraper) Lookup(ctx context.Context, query string) (model.ResearchResult, error) {
	if err := s.Sleep(ctx, s.SearchDelay); err != nil {
		return model.ResearchResult{}, err
	}

	links, err := s.search(ctx, query)
	if err != nil {
		return model.ResearchResult{}, err
	}

	found := &pageFindings{specs: map[string]any{}, pricing: map[string]any{}}
	words := strings.Fields(strings.ToLower(query))
	for _, link := range links {
		if err := s.Sleep(ctx, s.PageDelay); err != nil {
			return model.ResearchResult{}, err
		}
		if err := s.scanPage(ctx, link, words, found); err != nil {
			slog.Warn("skipping search result", "url", link, "error", err)
		}
	}

	res := model.ResearchResult{
		Specifications: found.specs,
		Pricing:        found.pricing,
		Images:         found.images,
		Confidence:     ConfidenceSparse,
	}
	if len(found.specs) > 0 && len(found.images) > 0 {
		res.Confidence = ConfidenceBasic
	}
	if len(res.Specifications) == 0 {
		res.Specifications = map[string]any{
			"note":         "Specifications not found in search results",
			"search_query": query,
		}
	}
	if len(res.Pricing) == 0 {
		res.Pricing = map[string]any{"market_price": defaultPricing}
	}
	if len(res.Images) == 0 {
		res.Images = []string{model.NoImagePlaceholder}
	}
	if len(res.Images) > maxImages {
		res.Images = res.Images[:maxImages]
	}
	return res, nil
}

// search returns the first link of each of the top result blocks.
func (s *BasicScraper) search(ctx context.Context, query string) ([]string, error) {
	u, err := url.Parse(s.SearchURL)
	if err != nil {
		return nil, fmt.Errorf("parsing search url: %w", err)
	}
	q := u.Query()
	q.Set("q", query+" specifications")
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, s.SearchTimeout)
	defer cancel()

	doc, err := fetchPage(ctx, s.HTTPClient, u.String(), true)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	var blocks []*html.Node
	walk(doc, func(n *html.Node) {
		if len(blocks) < searchResults && n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "g") {
			blocks = append(blocks, n)
		}
	})

	var links []string
	for _, b := range blocks {
		a := findFirst(b, "a")
		if a == nil {
			continue
		}
		if href := attr(a, "href"); strings.HasPrefix(href, "http") {
			links = append(links, href)
		}
	}
	return links, nil
}

func (s *BasicScraper) scanPage(ctx context.Context, link string, words []string, found *pageFindings) error {
	ctx, cancel := context.WithTimeout(ctx, s.PageTimeout)
	defer cancel()

	doc, err := fetchPage(ctx, s.HTTPClient, link, false)
	if err != nil {
		return err
	}
	base, _ := url.Parse(link)

	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "img" || len(found.images) >= maxPageImages {
			return
		}
		src := imageSource(n)
		if src == "" || !wantedImage(src, strings.ToLower(attr(n, "alt")), words) {
			return
		}
		src = absoluteURL(base, src)
		if strings.HasPrefix(src, "http") && !slices.Contains(found.images, src) {
			found.images = append(found.images, src)
		}
	})

	var weight, dims, price string
	for _, t := range textNodes(doc) {
		l := strings.ToLower(t)
		if weight == "" && strings.Contains(l, "weight") {
			weight = t
		}
		if dims == "" && strings.Contains(l, "dimension") {
			dims = t
		}
		if price == "" && (strings.Contains(t, "$") || strings.Contains(t, "₹") || strings.Contains(l, "price")) {
			price = t
		}
	}
	if weight != "" {
		found.specs["weight"] = truncate(weight, maxSnippet)
	}
	if dims != "" {
		found.specs["dimensions"] = truncate(dims, maxSnippet)
	}
	if price != "" {
		found.pricing["market_price"] = truncate(price, maxSnippet)
	}
	return nil
}

// wantedImage applies the product photo heuristics to an image source.
func wantedImage(src, alt string, words []string) bool {
	l := strings.ToLower(src)
	for _, skip := range negativeImageHints {
		if strings.Contains(l, skip) {
			return false
		}
	}
	for _, hint := range positiveImageHints {
		if strings.Contains(l, hint) {
			return true
		}
	}
	for _, w := range words {
		if strings.Contains(alt, w) || strings.Contains(l, w) {
			return true
		}
	}
	return false
}
