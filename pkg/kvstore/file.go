package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store using a single JSON file on disk.
// The whole file is rewritten on every mutation via a temp-file rename, so a
// crash mid-write never leaves a torn state behind.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFileStore creates a file-backed store at path, loading any existing
// contents. Parent directories are created as needed.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("kvstore: file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("kvstore: create store directory: %w", err)
	}

	s := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run, nothing to load
	case err != nil:
		return nil, fmt.Errorf("kvstore: read store file: %w", err)
	default:
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, fmt.Errorf("kvstore: parse store file: %w", err)
		}
	}

	return s, nil
}

// Get retrieves the value stored under key.
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set stores value under key and flushes the file to disk.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.values[key]
	s.values[key] = value

	if err := s.flush(); err != nil {
		// Roll back the in-memory map so memory and disk stay consistent
		if existed {
			s.values[key] = previous
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// Remove deletes the value stored under key and flushes the file to disk.
func (s *FileStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.values[key]
	if !existed {
		return nil
	}

	delete(s.values, key)

	if err := s.flush(); err != nil {
		s.values[key] = previous
		return err
	}
	return nil
}

// flush writes the current map to disk atomically.
// Callers must hold s.mu.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("kvstore: encode store file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("kvstore: write store file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("kvstore: replace store file: %w", err)
	}
	return nil
}
