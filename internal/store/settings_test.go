package store

import (
	"context"
	"testing"

	"github.com/erazemk/camorent/internal/db"
)

func TestGetTokenSecret_GeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	secret1, err := GetTokenSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	secret2, err := GetTokenSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestCountRows(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "a@x.io", "", "h")

	n, err := CountRows(ctx, database, "users")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 user, got %d", n)
	}

	if _, err := CountRows(ctx, database, "users; DROP TABLE users"); err == nil {
		t.Error("expected unknown table error")
	}
}
