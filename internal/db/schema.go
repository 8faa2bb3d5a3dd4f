package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. IDs are generated by the application.
// sku_id on inventory is not a foreign key; items may reference SKUs that
// were created elsewhere.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL,
    name          TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);

CREATE TABLE IF NOT EXISTS skus (
    id               TEXT PRIMARY KEY,
    name             TEXT NOT NULL,
    brand            TEXT NOT NULL,
    model            TEXT NOT NULL DEFAULT '',
    category         TEXT NOT NULL,
    description      TEXT NOT NULL DEFAULT '',
    specifications   TEXT NOT NULL DEFAULT '{}',
    price_per_day    TEXT NOT NULL DEFAULT '0',
    security_deposit TEXT NOT NULL DEFAULT '0',
    image_url        TEXT NOT NULL DEFAULT '',
    image            BLOB,
    image_mime       TEXT,
    is_active        INTEGER NOT NULL DEFAULT 1,
    created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_skus_brand_model ON skus(brand, model);
CREATE INDEX IF NOT EXISTS idx_skus_category ON skus(category);

CREATE TABLE IF NOT EXISTS inventory (
    id             TEXT PRIMARY KEY,
    sku_id         TEXT NOT NULL,
    serial_number  TEXT NOT NULL DEFAULT '',
    barcode        TEXT NOT NULL DEFAULT '',
    condition      TEXT NOT NULL CHECK (condition IN ('new', 'good', 'fair', 'damaged')),
    status         TEXT NOT NULL CHECK (status IN ('available', 'booked', 'maintenance', 'retired')),
    location       TEXT NOT NULL DEFAULT '',
    purchase_price TEXT NOT NULL DEFAULT '0',
    current_value  TEXT NOT NULL DEFAULT '0',
    notes          TEXT NOT NULL DEFAULT '',
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    created_by     TEXT NOT NULL DEFAULT 'system'
);

CREATE INDEX IF NOT EXISTS idx_inventory_sku ON inventory(sku_id);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
