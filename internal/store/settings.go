package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

const tokenSecretKey = "token_secret"

// GetSetting returns a setting value and whether it exists.
func GetSetting(ctx context.Context, db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting setting %s: %w", key, err)
	}
	return value, true, nil
}

// GetTokenSecret returns the token signing secret, generating and storing
// one on first use. INSERT OR IGNORE followed by a re-read keeps concurrent
// first starts on the same value.
func GetTokenSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token secret: %w", err)
	}

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		tokenSecretKey, hex.EncodeToString(buf),
	)
	if err != nil {
		return "", fmt.Errorf("storing token secret: %w", err)
	}

	secret, ok, err := GetSetting(ctx, db, tokenSecretKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("token secret missing after insert")
	}
	return secret, nil
}
