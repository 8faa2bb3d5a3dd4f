package model

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"User@Example.com", "user@example.com"},
		{"  padded@example.com  ", "padded@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultName(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane@example.com", "jane"},
		{"no-at-sign", "no-at-sign"},
		{"@example.com", ""},
	}

	for _, tt := range tests {
		if got := DefaultName(tt.email); got != tt.want {
			t.Errorf("DefaultName(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
