package research

import (
	"github.com/erazemk/camorent/internal/config"
	"github.com/erazemk/camorent/internal/llm"
	"github.com/erazemk/camorent/internal/metrics"
)

// New assembles the researcher described by cfg: an optional smart scraper
// ahead of the basic scraper, curated specifications on top, and a cache
// over everything. A nil store means an in-process cache.
func New(cfg *config.Config, m *metrics.Metrics, store Store) Researcher {
	var smart Strategy
	switch {
	case cfg.HasScrapeGraphKey():
		smart = &SmartScraper{Scraper: NewScrapeGraphClient(cfg.ScrapeGraphKey, cfg.ScrapeGraphBaseURL)}
	case cfg.SmartScrapeLLM && cfg.HasModelKey():
		smart = &SmartScraper{Scraper: NewLLMScraper(llm.NewClient(llm.Config{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.ChatModel,
			Timeout: cfg.OpenAITimeout,
		}))}
	}

	chain := NewChain(m, smart, NewBasicScraper(cfg.SearchURL))

	if store == nil {
		store = NewMemoryStore(cfg.ResearchCacheTTL, 2*cfg.ResearchCacheTTL)
	}
	return &Cached{
		Next:    KnownSpecs{Next: chain},
		Store:   store,
		TTL:     cfg.ResearchCacheTTL,
		Metrics: m,
	}
}
