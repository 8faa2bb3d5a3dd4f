package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Password hashing schemes.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// Hasher hashes new passwords with a configured scheme and verifies stored
// hashes of either scheme.
type Hasher struct {
	scheme string
}

// NewHasher returns a Hasher for the named scheme.
func NewHasher(scheme string) (*Hasher, error) {
	switch scheme {
	case "", SchemeSHA256:
		return &Hasher{scheme: SchemeSHA256}, nil
	case SchemeBcrypt:
		return &Hasher{scheme: SchemeBcrypt}, nil
	}
	return nil, fmt.Errorf("unknown password scheme %q", scheme)
}

// Scheme returns the scheme used for new hashes.
func (h *Hasher) Scheme() string {
	return h.scheme
}

// Hash hashes a password.
func (h *Hasher) Hash(password string) (string, error) {
	if h.scheme == SchemeBcrypt {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("hashing password: %w", err)
		}
		return string(hash), nil
	}
	return sha256Hex(password), nil
}

// Verify reports whether password matches the stored hash. The stored
// format decides the scheme, not the configured one.
func (h *Hasher) Verify(password, hash string) bool {
	if isBcrypt(hash) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	want := sha256Hex(password)
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(hash))) == 1
}

// sha256Hex is the unsalted hex digest used by existing user records.
func sha256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}
