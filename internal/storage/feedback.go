package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

var ErrIndexOutOfRange = errors.New("feedback index out of range")

// feedbackDelimiter separates entries on disk; entries are trimmed around it
// so whitespace-only fragments never resurface as records.
const feedbackDelimiter = "---"

type FeedbackStore struct {
	path string
	mu   sync.Mutex
}

func NewFeedbackStore(path string) *FeedbackStore {
	return &FeedbackStore{path: path}
}

// Append adds one trimmed entry to the end of the log.
func (s *FeedbackStore) Append(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open feedback file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(strings.TrimSpace(text) + "\n" + feedbackDelimiter + "\n"); err != nil {
		return fmt.Errorf("append feedback: %w", err)
	}
	return nil
}

// All returns every stored entry in order. A missing file is an empty store.
func (s *FeedbackStore) All() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all()
}

func (s *FeedbackStore) all() ([]string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read feedback file: %w", err)
	}

	var entries []string
	for _, chunk := range strings.Split(string(b), feedbackDelimiter) {
		if trimmed := strings.TrimSpace(chunk); trimmed != "" {
			entries = append(entries, trimmed)
		}
	}
	return entries, nil
}

// DeleteAt removes the entry at index and rewrites the file. Indices shift
// after deletion; they are positions, not stable identifiers.
func (s *FeedbackStore) DeleteAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.all()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(entries) {
		return ErrIndexOutOfRange
	}
	entries = append(entries[:index], entries[index+1:]...)
	return s.rewrite(entries)
}

// Clear truncates the store.
func (s *FeedbackStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path, nil, 0o600); err != nil {
		return fmt.Errorf("truncate feedback file: %w", err)
	}
	return nil
}

func (s *FeedbackStore) rewrite(entries []string) error {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e)
		sb.WriteString("\n" + feedbackDelimiter + "\n")
	}
	if err := os.WriteFile(s.path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("rewrite feedback file: %w", err)
	}
	return nil
}
