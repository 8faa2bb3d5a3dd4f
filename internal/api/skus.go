package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/erazemk/camorent/internal/imaging"
	"github.com/erazemk/camorent/internal/model"
	"github.com/erazemk/camorent/internal/store"
)

// uncategorized groups SKUs without a category in grouped listings.
const uncategorized = "uncategorized"

// SKUsHandler handles SKU endpoints.
type SKUsHandler struct {
	DB            *sql.DB
	Validate      *validator.Validate
	MaxImageBytes int64
}

type createSKURequest struct {
	Name            *string        `json:"name" validate:"required"`
	Brand           *string        `json:"brand" validate:"required"`
	Model           string         `json:"model"`
	Category        *string        `json:"category" validate:"required"`
	Description     string         `json:"description"`
	Specifications  map[string]any `json:"specifications"`
	PricePerDay     model.Money    `json:"price_per_day"`
	SecurityDeposit model.Money    `json:"security_deposit"`
	ImageURL        string         `json:"image_url"`
	IsActive        *bool          `json:"is_active"`
}

// List handles GET /api/skus.
func (h *SKUsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.SKUFilter{Category: q.Get("category")}
	if v, ok := q["is_active"]; ok {
		active := strings.EqualFold(v[0], "true")
		filter.IsActive = &active
	}

	skus, err := store.ListSKUs(r.Context(), h.DB, filter)
	if err != nil {
		serverError(w, r, "Failed to fetch SKUs", err)
		return
	}
	if skus == nil {
		skus = []model.SKU{}
	}

	if strings.EqualFold(q.Get("group_by_category"), "true") {
		grouped := make(map[string][]model.SKU)
		for _, sku := range skus {
			category := sku.Category
			if category == "" {
				category = uncategorized
			}
			grouped[category] = append(grouped[category], sku)
		}
		jsonResponse(w, http.StatusOK, map[string]any{
			"skus_by_category": grouped,
			"total_count":      len(skus),
		})
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"skus":  skus,
		"count": len(skus),
	})
}

// Create handles POST /api/skus. An existing SKU with the same brand and
// model is returned instead of creating a duplicate.
func (h *SKUsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSKURequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	existing, err := store.FindSKUByBrandModel(r.Context(), h.DB, *req.Brand, req.Model)
	if err != nil {
		serverError(w, r, "Failed to create SKU", err)
		return
	}
	if existing != nil {
		jsonResponse(w, http.StatusOK, map[string]any{
			"success":  true,
			"sku_id":   existing.ID,
			"message":  "SKU already exists",
			"existing": true,
		})
		return
	}

	sku := model.SKU{
		Name:            *req.Name,
		Brand:           *req.Brand,
		Model:           req.Model,
		Category:        *req.Category,
		Description:     req.Description,
		Specifications:  req.Specifications,
		PricePerDay:     req.PricePerDay,
		SecurityDeposit: req.SecurityDeposit,
		ImageURL:        req.ImageURL,
		IsActive:        req.IsActive == nil || *req.IsActive,
	}
	created, err := store.CreateSKU(r.Context(), h.DB, sku)
	if err != nil {
		serverError(w, r, "Failed to create SKU", err)
		return
	}

	slog.Info("sku created", "id", created.ID, "brand", created.Brand, "model", created.Model)
	jsonResponse(w, http.StatusCreated, map[string]any{
		"success":  true,
		"sku_id":   created.ID,
		"message":  "SKU created successfully",
		"existing": false,
	})
}

// UploadImage handles PUT /api/skus/{id}/image.
func (h *SKUsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxImageBytes)
	if err := r.ParseMultipartForm(h.MaxImageBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Normalize(file)
	if errors.Is(err, imaging.ErrUnsupported) {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		jsonError(w, http.StatusBadRequest, "could not decode image")
		return
	}

	imageURL := "/api/skus/" + id + "/image"
	ok, err := store.SetSKUImage(r.Context(), h.DB, id, photo.Data, photo.MIME, imageURL)
	if err != nil {
		serverError(w, r, "failed to save image", err)
		return
	}
	if !ok {
		jsonError(w, http.StatusNotFound, "SKU not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"message":   "image uploaded",
		"image_url": imageURL,
		"width":     photo.Width,
		"height":    photo.Height,
	})
}

// GetImage handles GET /api/skus/{id}/image.
func (h *SKUsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetSKUImage(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		serverError(w, r, "failed to get image", err)
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
