package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/camorent/internal/model"
)

const skuColumns = `id, name, brand, model, category, description, specifications,
	price_per_day, security_deposit, image_url, is_active, created_at`

// CreateSKU inserts a new SKU. The ID and creation time are assigned here.
func CreateSKU(ctx context.Context, db *sql.DB, sku model.SKU) (*model.SKU, error) {
	sku.ID = uuid.NewString()
	sku.CreatedAt = time.Now().UTC()
	if sku.Specifications == nil {
		sku.Specifications = map[string]any{}
	}

	specs, err := json.Marshal(sku.Specifications)
	if err != nil {
		return nil, fmt.Errorf("encoding specifications: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO skus (id, name, brand, model, category, description, specifications,
		                   price_per_day, security_deposit, image_url, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sku.ID, sku.Name, sku.Brand, sku.Model, sku.Category, sku.Description, string(specs),
		sku.PricePerDay, sku.SecurityDeposit, sku.ImageURL, sku.IsActive, sku.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating sku: %w", err)
	}

	return &sku, nil
}

// GetSKU returns a SKU by ID, or nil if it does not exist.
func GetSKU(ctx context.Context, db *sql.DB, id string) (*model.SKU, error) {
	row := db.QueryRowContext(ctx, `SELECT `+skuColumns+` FROM skus WHERE id = ?`, id)
	sku, err := scanSKU(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting sku: %w", err)
	}
	return sku, nil
}

// FindSKUByBrandModel returns the oldest SKU with exactly this brand and
// model, or nil. Duplicates are possible; the first one wins.
func FindSKUByBrandModel(ctx context.Context, db *sql.DB, brand, skuModel string) (*model.SKU, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+skuColumns+` FROM skus WHERE brand = ? AND model = ?
		 ORDER BY created_at, rowid LIMIT 1`,
		brand, skuModel,
	)
	sku, err := scanSKU(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding sku by brand and model: %w", err)
	}
	return sku, nil
}

// ListSKUs returns SKUs matching the filter in creation order.
func ListSKUs(ctx context.Context, db *sql.DB, filter model.SKUFilter) ([]model.SKU, error) {
	var where []string
	var args []any
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.IsActive != nil {
		where = append(where, "is_active = ?")
		args = append(args, *filter.IsActive)
	}

	query := `SELECT ` + skuColumns + ` FROM skus`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, rowid`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing skus: %w", err)
	}
	defer rows.Close()

	var skus []model.SKU
	for rows.Next() {
		sku, err := scanSKU(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sku: %w", err)
		}
		skus = append(skus, *sku)
	}
	return skus, rows.Err()
}

// SetSKUImage stores image data for a SKU and points its image_url at it.
// Returns false if the SKU does not exist.
func SetSKUImage(ctx context.Context, db *sql.DB, id string, image []byte, mime, imageURL string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE skus SET image = ?, image_mime = ?, image_url = ? WHERE id = ?`,
		image, mime, imageURL, id,
	)
	if err != nil {
		return false, fmt.Errorf("setting sku image: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking sku image update: %w", err)
	}
	return n > 0, nil
}

// GetSKUImage returns a SKU's stored image data and MIME type.
// Data is nil when the SKU has no stored image.
func GetSKUImage(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM skus WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting sku image: %w", err)
	}
	return image, mime.String, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSKU(s rowScanner) (*model.SKU, error) {
	var sku model.SKU
	var specs string
	if err := s.Scan(&sku.ID, &sku.Name, &sku.Brand, &sku.Model, &sku.Category, &sku.Description, &specs,
		&sku.PricePerDay, &sku.SecurityDeposit, &sku.ImageURL, &sku.IsActive, &sku.CreatedAt); err != nil {
		return nil, err
	}
	sku.Specifications = map[string]any{}
	if specs != "" {
		if err := json.Unmarshal([]byte(specs), &sku.Specifications); err != nil {
			return nil, fmt.Errorf("decoding specifications: %w", err)
		}
	}
	return &sku, nil
}
