package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/erazemk/camorent/internal/model"
	"github.com/erazemk/camorent/internal/store"
)

// InventoryHandler handles inventory endpoints.
type InventoryHandler struct {
	DB       *sql.DB
	Validate *validator.Validate
}

type createInventoryRequest struct {
	SKUID         *string     `json:"sku_id" validate:"required"`
	Condition     *string     `json:"condition" validate:"required,oneof=new good fair damaged"`
	Status        *string     `json:"status" validate:"required,oneof=available booked maintenance retired"`
	SerialNumber  string      `json:"serial_number"`
	Barcode       string      `json:"barcode"`
	Location      string      `json:"location"`
	PurchasePrice model.Money `json:"purchase_price"`
	CurrentValue  model.Money `json:"current_value"`
	Notes         string      `json:"notes"`
	CreatedBy     string      `json:"created_by"`
}

// List handles GET /api/inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := store.ListInventory(r.Context(), h.DB, model.InventoryFilter{
		Status:    q.Get("status"),
		Condition: q.Get("condition"),
		SKUID:     q.Get("sku_id"),
	})
	if err != nil {
		serverError(w, r, "Failed to fetch inventory", err)
		return
	}
	if items == nil {
		items = []model.InventoryItem{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"inventory": items,
		"count":     len(items),
	})
}

// Create handles POST /api/inventory. The SKU reference is stored as given.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	barcode := req.Barcode
	if barcode == "" {
		var err error
		barcode, err = model.GenerateBarcode(time.Now())
		if err != nil {
			serverError(w, r, "Failed to create inventory item", err)
			return
		}
	}

	item, err := store.CreateInventoryItem(r.Context(), h.DB, model.InventoryItem{
		SKUID:         *req.SKUID,
		SerialNumber:  req.SerialNumber,
		Barcode:       barcode,
		Condition:     *req.Condition,
		Status:        *req.Status,
		Location:      req.Location,
		PurchasePrice: req.PurchasePrice,
		CurrentValue:  req.CurrentValue,
		Notes:         req.Notes,
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		serverError(w, r, "Failed to create inventory item", err)
		return
	}

	slog.Info("inventory item created", "id", item.ID, "sku_id", item.SKUID, "barcode", item.Barcode)
	jsonResponse(w, http.StatusCreated, map[string]any{
		"success":      true,
		"inventory_id": item.ID,
		"barcode":      item.Barcode,
		"message":      "Inventory item created successfully",
	})
}
