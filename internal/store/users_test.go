package store

import (
	"context"
	"testing"

	"github.com/erazemk/camorent/internal/db"
)

func TestCreateAndGetUserByEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "jane@example.com", "Jane", "hash123")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := GetUserByEmail(ctx, database, "jane@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("expected user %s, got %+v", user.ID, got)
	}
	if got.PasswordHash != "hash123" {
		t.Errorf("expected stored hash, got %q", got.PasswordHash)
	}

	byID, err := GetUser(ctx, database, user.ID)
	if err != nil || byID == nil {
		t.Fatalf("GetUser: %v", err)
	}
	if byID.Name != "Jane" {
		t.Errorf("expected name Jane, got %q", byID.Name)
	}

	missing, err := GetUserByEmail(ctx, database, "bob@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing user")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "dup@example.com", "one", "h")
	if _, err := CreateUser(ctx, database, "dup@example.com", "two", "h"); err == nil {
		t.Error("expected unique index violation")
	}
}

func TestListUsersLimit(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, email := range []string{"a@x.io", "b@x.io", "c@x.io", "d@x.io"} {
		CreateUser(ctx, database, email, "", "h")
	}

	limited, _ := ListUsers(ctx, database, 3)
	if len(limited) != 3 {
		t.Errorf("expected 3 users, got %d", len(limited))
	}
	all, _ := ListUsers(ctx, database, 0)
	if len(all) != 4 {
		t.Errorf("expected 4 users, got %d", len(all))
	}
}
