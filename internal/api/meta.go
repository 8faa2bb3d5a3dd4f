package api

import (
	"net/http"

	"github.com/erazemk/camorent/internal/model"
)

// ServiceName identifies this API in health responses.
const ServiceName = "camorent-inventory-api"

var healthEndpoints = []string{
	"/api/process-audio",
	"/api/process-sample",
	"/api/inventory",
	"/api/skus",
	"/api/categories",
	"/api/auth",
}

// Health handles GET /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   ServiceName,
		"endpoints": healthEndpoints,
	})
}

// Categories handles GET /api/categories.
func Categories(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, model.NewTaxonomy())
}
