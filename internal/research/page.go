package research

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// maxPageBytes bounds how much of a fetched page is parsed.
const maxPageBytes = 5 << 20

// fetchPage GETs pageURL with a browser user agent and parses the body.
// Error statuses are returned as errors when strict is set.
func fetchPage(ctx context.Context, client *http.Client, pageURL string, strict bool) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if strict && resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("GET %s: http %d", pageURL, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}
	return doc, nil
}

// walk calls fn for every node under n in document order.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findFirst(n *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) {
		if found == nil && c != n && c.Type == html.ElementNode && c.Data == tag {
			found = c
		}
	})
	return found
}

// imageSource returns the first non-empty of the lazy-loading aware
// source attributes.
func imageSource(img *html.Node) string {
	for _, key := range []string{"src", "data-src", "data-lazy-src"} {
		if v := strings.TrimSpace(attr(img, key)); v != "" {
			return v
		}
	}
	return ""
}

// absoluteURL resolves src against the page it was found on.
func absoluteURL(base *url.URL, src string) string {
	switch {
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "/") && base != nil:
		ref, err := url.Parse(src)
		if err != nil {
			return src
		}
		return base.ResolveReference(ref).String()
	}
	return src
}

// textNodes returns visible text nodes, skipping script and style bodies.
func textNodes(doc *html.Node) []string {
	var out []string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				out = append(out, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	return out
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}
