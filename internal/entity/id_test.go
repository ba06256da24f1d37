package entity

import (
	"errors"
	"strings"
	"testing"
)

func TestNewUserIDTrimsWhitespace(t *testing.T) {
	id, err := NewUserID("  user-7  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "user-7" {
		t.Fatalf("expected trimmed id, got %q", id.String())
	}
}

func TestNewUserIDRejectsEmpty(t *testing.T) {
	if _, err := NewUserID("   "); !errors.Is(err, ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestNewUserIDRejectsOversized(t *testing.T) {
	if _, err := NewUserID(strings.Repeat("a", 191)); !errors.Is(err, ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestNewRecordIDRejectsEmpty(t *testing.T) {
	if _, err := NewRecordID(""); !errors.Is(err, ErrInvalidRecordID) {
		t.Fatalf("expected ErrInvalidRecordID, got %v", err)
	}
}

func TestNewRecordIDAcceptsUUIDShapedInput(t *testing.T) {
	id, err := NewRecordID("0190f4c2-0000-7000-8000-0123456789ab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() == "" {
		t.Fatalf("expected id to round-trip")
	}
}
