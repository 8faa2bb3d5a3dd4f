package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/camorent/internal/model"
)

const inventoryColumns = `id, sku_id, serial_number, barcode, condition, status, location,
	purchase_price, current_value, notes, created_at, created_by`

// CreateInventoryItem inserts a new inventory item. The SKU reference is not
// checked.
func CreateInventoryItem(ctx context.Context, db *sql.DB, item model.InventoryItem) (*model.InventoryItem, error) {
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()
	if item.CreatedBy == "" {
		item.CreatedBy = model.DefaultCreatedBy
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO inventory (id, sku_id, serial_number, barcode, condition, status, location,
		                        purchase_price, current_value, notes, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.SKUID, item.SerialNumber, item.Barcode, item.Condition, item.Status, item.Location,
		item.PurchasePrice, item.CurrentValue, item.Notes, item.CreatedAt, item.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("creating inventory item: %w", err)
	}

	return &item, nil
}

// GetInventoryItem returns an inventory item by ID, or nil.
func GetInventoryItem(ctx context.Context, db *sql.DB, id string) (*model.InventoryItem, error) {
	row := db.QueryRowContext(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = ?`, id)
	item, err := scanInventoryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting inventory item: %w", err)
	}
	return item, nil
}

// ListInventory returns inventory items matching the filter in creation order.
func ListInventory(ctx context.Context, db *sql.DB, filter model.InventoryFilter) ([]model.InventoryItem, error) {
	var where []string
	var args []any
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Condition != "" {
		where = append(where, "condition = ?")
		args = append(args, filter.Condition)
	}
	if filter.SKUID != "" {
		where = append(where, "sku_id = ?")
		args = append(args, filter.SKUID)
	}

	query := `SELECT ` + inventoryColumns + ` FROM inventory`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, rowid`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func scanInventoryItem(s rowScanner) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := s.Scan(&item.ID, &item.SKUID, &item.SerialNumber, &item.Barcode, &item.Condition, &item.Status,
		&item.Location, &item.PurchasePrice, &item.CurrentValue, &item.Notes, &item.CreatedAt, &item.CreatedBy); err != nil {
		return nil, err
	}
	return &item, nil
}
