// Package cache persists HTTP validators (ETag / Last-Modified) between runs
// so unchanged sources can be skipped with conditional requests.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Validator holds the opaque conditional-request tokens for one source URL.
type Validator struct {
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"modified,omitempty"`
}

// Store is a flat url -> Validator mapping backed by a single JSON file.
// It is loaded once at construction and written once per run via Save, so a
// crash mid-run loses at most that run's deltas and never corrupts prior
// entries.
type Store struct {
	path string

	mu      sync.Mutex
	entries map[string]Validator
}

// NewStore loads the validator mapping from path. A missing or malformed
// file degrades to an empty mapping, not an error.
func NewStore(path string) *Store {
	s := &Store{
		path:    path,
		entries: make(map[string]Validator),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read fetch cache, starting empty", "path", path, "error", err)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		slog.Warn("Malformed fetch cache, starting empty", "path", path, "error", err)
		s.entries = make(map[string]Validator)
	}

	return s
}

// Get returns the cached validator for url, if any.
func (s *Store) Get(url string) (Validator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries[url]
	return v, ok
}

// Set merges the validator for url field by field. A response that carries
// only one token keeps the other's last known value, so a source that stops
// sending a token never degrades to unconditional fetches.
func (s *Store) Set(url string, v Validator) {
	if v.ETag == "" && v.LastModified == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.entries[url]
	if v.ETag != "" {
		current.ETag = v.ETag
	}
	if v.LastModified != "" {
		current.LastModified = v.LastModified
	}
	s.entries[url] = current
}

// Save writes the whole mapping back to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode fetch cache: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write fetch cache: %w", err)
	}

	return nil
}

// Entries returns a copy of the current mapping.
func (s *Store) Entries() map[string]Validator {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make(map[string]Validator, len(s.entries))
	for k, v := range s.entries {
		entries[k] = v
	}
	return entries
}
