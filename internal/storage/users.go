// Package storage owns the two flat files this service persists: the
// username→password-hash mapping and the feedback log. Both are whole-file
// read/rewrite stores guarded by a mutex so concurrent handlers cannot
// interleave partial writes.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

type UserStore struct {
	path string
	mu   sync.Mutex
}

func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// Load reads the full username→hash mapping. A missing file is an empty store.
func (s *UserStore) Load() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *UserStore) load() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}
	users := map[string]string{}
	if err := json.Unmarshal(b, &users); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}
	return users, nil
}

// Save overwrites the whole mapping.
func (s *UserStore) Save(users map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(users)
}

func (s *UserStore) save(users map[string]string) error {
	b, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	return nil
}

// Create adds a new user under the lock so a concurrent signup for the same
// name cannot slip between the existence check and the write.
func (s *UserStore) Create(username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := users[username]; ok {
		return ErrUserExists
	}
	users[username] = passwordHash
	return s.save(users)
}

// Hash returns the stored password hash for a username.
func (s *UserStore) Hash(username string) (string, error) {
	users, err := s.Load()
	if err != nil {
		return "", err
	}
	hash, ok := users[username]
	if !ok {
		return "", ErrUserNotFound
	}
	return hash, nil
}

// HashPassword salts and hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
