package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUserStoreMissingFileIsEmpty(t *testing.T) {
	s := NewUserStore(filepath.Join(t.TempDir(), "users.json"))

	users, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty store, got %d users", len(users))
	}
}

func TestUserStoreCreateAndHash(t *testing.T) {
	s := NewUserStore(filepath.Join(t.TempDir(), "users.json"))

	if err := s.Create("studentone", "hash-1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	hash, err := s.Hash("studentone")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash != "hash-1" {
		t.Fatalf("expected hash-1, got %q", hash)
	}

	if _, err := s.Hash("nobodyhere"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserStoreDuplicateDoesNotMutate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s := NewUserStore(path)

	if err := s.Create("studentone", "hash-1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Create("studentone", "hash-2"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	hash, err := s.Hash("studentone")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash != "hash-1" {
		t.Fatalf("duplicate signup mutated the store: %q", hash)
	}
}

func TestUserStoreWritesIndentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s := NewUserStore(path)

	if err := s.Create("studentone", "hash-1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(b), "\n    \"studentone\"") {
		t.Fatalf("expected indented json, got %q", string(b))
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "Secret123" {
		t.Fatalf("password stored in plaintext")
	}
	if !VerifyPassword(hash, "Secret123") {
		t.Fatalf("expected password to verify")
	}
	if VerifyPassword(hash, "Secret124") {
		t.Fatalf("expected wrong password to fail")
	}
}
