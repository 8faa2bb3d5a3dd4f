package model

import (
	"time"
)

// SKU is a catalog entry describing an equipment model, not a physical unit.
type SKU struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Brand           string         `json:"brand"`
	Model           string         `json:"model"`
	Category        string         `json:"category"`
	Description     string         `json:"description"`
	Specifications  map[string]any `json:"specifications"`
	PricePerDay     Money          `json:"price_per_day"`
	SecurityDeposit Money          `json:"security_deposit"`
	ImageURL        string         `json:"image_url"`
	IsActive        bool           `json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
}

// SKUFilter narrows a SKU listing. Nil/empty fields are ignored.
type SKUFilter struct {
	Category string
	IsActive *bool
}
