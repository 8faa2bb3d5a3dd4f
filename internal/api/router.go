package api

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/erazemk/camorent/internal/auth"
	"github.com/erazemk/camorent/internal/config"
	"github.com/erazemk/camorent/internal/metrics"
	"github.com/erazemk/camorent/internal/pipeline"
)

// Deps are the collaborators the API handlers need.
type Deps struct {
	DB          *sql.DB
	Config      *config.Config
	Pipeline    *pipeline.Pipeline
	Hasher      *auth.Hasher
	TokenSecret string
	Metrics     *metrics.Metrics
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()
	v := newValidator()

	handle := func(pattern string, h http.Handler) {
		_, route, _ := strings.Cut(pattern, " ")
		mux.Handle(pattern, instrument(d.Metrics, route, h))
	}

	skusHandler := &SKUsHandler{DB: d.DB, Validate: v, MaxImageBytes: d.Config.MaxImageBytes}
	inventoryHandler := &InventoryHandler{DB: d.DB, Validate: v}
	authHandler := &AuthHandler{DB: d.DB, Hasher: d.Hasher, TokenSecret: d.TokenSecret}
	processHandler := &ProcessHandler{Pipeline: d.Pipeline, MaxAudioBytes: d.Config.MaxAudioBytes}

	handle("GET /api/health", http.HandlerFunc(Health))
	handle("GET /api/categories", http.HandlerFunc(Categories))

	handle("GET /api/skus", http.HandlerFunc(skusHandler.List))
	handle("POST /api/skus", http.HandlerFunc(skusHandler.Create))
	handle("PUT /api/skus/{id}/image", http.HandlerFunc(skusHandler.UploadImage))
	handle("GET /api/skus/{id}/image", http.HandlerFunc(skusHandler.GetImage))

	handle("GET /api/inventory", http.HandlerFunc(inventoryHandler.List))
	handle("POST /api/inventory", http.HandlerFunc(inventoryHandler.Create))

	handle("POST /api/auth/login", http.HandlerFunc(authHandler.Login))
	handle("POST /api/auth/signup", http.HandlerFunc(authHandler.Signup))

	// Processing calls paid upstream APIs, so it is rate limited per client.
	limit := rateLimit(d.Config.ProcessRateLimit)
	handle("POST /api/process-audio", limit(http.HandlerFunc(processHandler.ProcessAudio)))
	handle("POST /api/process-sample", limit(http.HandlerFunc(processHandler.ProcessSample)))

	if d.Metrics != nil {
		mux.Handle("GET /api/metrics", d.Metrics.Handler())
	}

	return RecoverMiddleware(SecureMiddleware(mux))
}
