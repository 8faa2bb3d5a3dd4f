package research

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/camorent/internal/model"
)

const testSearchURL = "https://search.test/search"

func testBasicScraper(slept *[]time.Duration) *BasicScraper {
	s := NewBasicScraper(testSearchURL)
	s.Sleep = func(_ context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
	return s
}

const searchPage = `<html><body>
<div class="g"><a href="https://shop.test/r5">Canon EOS R5</a></div>
<div class="g"><a href="/url?q=relative">relative</a></div>
<div class="g x"><a href="https://broken.test/page">broken</a></div>
<div class="g"><a href="https://fourth.test/">ignored</a></div>
</body></html>`

const productPage = `<html><head><title>R5</title><style>.weight{}</style></head><body>
<img src="/img/canon-r5-large.jpg" alt="Canon EOS R5">
<img src="https://cdn.test/logo.png" alt="canon">
<img data-src="//cdn.test/product/r5-body.jpg">
<img src="https://cdn.test/misc.jpg" alt="random">
<p>Weight: approx. 738 g</p>
<p>Dimensions 138 x 97.5 x 88 mm</p>
<span>Price: $3,899</span>
</body></html>`

func TestBasicScraperLookup(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, testSearchURL, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "Canon EOS R5 specifications specifications", req.URL.Query().Get("q"))
		assert.True(t, strings.HasPrefix(req.Header.Get("User-Agent"), "Mozilla/5.0"))
		return httpmock.NewStringResponse(http.StatusOK, searchPage), nil
	})
	httpmock.RegisterResponder(http.MethodGet, "https://shop.test/r5", httpmock.NewStringResponder(http.StatusOK, productPage))
	httpmock.RegisterResponder(http.MethodGet, "https://broken.test/page", httpmock.NewErrorResponder(errors.New("connection refused")))

	var slept []time.Duration
	res, err := testBasicScraper(&slept).Lookup(context.Background(), "Canon EOS R5 specifications")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"weight":     "Weight: approx. 738 g",
		"dimensions": "Dimensions 138 x 97.5 x 88 mm",
	}, res.Specifications)
	assert.Equal(t, map[string]any{"market_price": "Price: $3,899"}, res.Pricing)
	assert.Equal(t, []string{
		"https://shop.test/img/canon-r5-large.jpg",
		"https://cdn.test/product/r5-body.jpg",
	}, res.Images)
	assert.InDelta(t, ConfidenceBasic, res.Confidence, 1e-9)
	assert.Equal(t, []time.Duration{time.Second, 500 * time.Millisecond, 500 * time.Millisecond}, slept)

	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 0, info["GET https://fourth.test/"])
}

func TestBasicScraperNothingFound(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, testSearchURL, httpmock.NewStringResponder(http.StatusOK, "<html><body>no results</body></html>"))

	var slept []time.Duration
	res, err := testBasicScraper(&slept).Lookup(context.Background(), "Obscure Thing")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"note":         "Specifications not found in search results",
		"search_query": "Obscure Thing",
	}, res.Specifications)
	assert.Equal(t, map[string]any{"market_price": defaultPricing}, res.Pricing)
	assert.Equal(t, []string{model.NoImagePlaceholder}, res.Images)
	assert.InDelta(t, ConfidenceSparse, res.Confidence, 1e-9)
}

func TestBasicScraperSearchFailure(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, testSearchURL, httpmock.NewStringResponder(http.StatusTooManyRequests, "blocked"))

	var slept []time.Duration
	_, err := testBasicScraper(&slept).Lookup(context.Background(), "Canon EOS R5")
	require.Error(t, err)

	res := NewChain(nil, testBasicScraper(&slept)).Research(context.Background(), "Canon EOS R5")
	assert.InDelta(t, ConfidenceFailed, res.Confidence, 1e-9)
	assert.Contains(t, res.Specifications["error"], "Web research failed:")
	assert.Equal(t, []string{model.ErrorImagePlaceholder}, res.Images)
}

func TestBasicScraperHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBasicScraper(testSearchURL).Lookup(ctx, "Canon EOS R5")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWantedImage(t *testing.T) {
	words := []string{"sony", "a7"}
	assert.True(t, wantedImage("https://x/sony-body.jpg", "", words))
	assert.True(t, wantedImage("https://x/1.jpg", "the sony a7", words))
	assert.True(t, wantedImage("https://x/full/1.jpg", "", words))
	assert.False(t, wantedImage("https://x/sony-thumb.jpg", "", words))
	assert.False(t, wantedImage("https://x/1.jpg", "", words))
}
