package model

import (
	"strings"
	"time"
)

// User is an account in the users collection.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultName derives a display name from the local part of an email.
func DefaultName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
