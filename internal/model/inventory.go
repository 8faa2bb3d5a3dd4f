package model

import (
	"time"
)

// InventoryItem is a specific physical unit linked to a SKU.
type InventoryItem struct {
	ID            string    `json:"id"`
	SKUID         string    `json:"sku_id"`
	SerialNumber  string    `json:"serial_number"`
	Barcode       string    `json:"barcode"`
	Condition     string    `json:"condition"`
	Status        string    `json:"status"`
	Location      string    `json:"location"`
	PurchasePrice Money     `json:"purchase_price"`
	CurrentValue  Money     `json:"current_value"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"`
}

// InventoryFilter narrows an inventory listing. Empty fields are ignored.
type InventoryFilter struct {
	Status    string
	Condition string
	SKUID     string
}

// Item conditions.
const (
	ConditionNew     = "new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
	ConditionDamaged = "damaged"
)

// Item statuses.
const (
	StatusAvailable   = "available"
	StatusBooked      = "booked"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

// DefaultCreatedBy is recorded when a client does not say who added an item.
const DefaultCreatedBy = "system"
