package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists keys in a single JSON document on disk. Every Set
// rewrites the document through a temp file and rename, so a crashed write
// never leaves a half-written store behind.
type FileStore struct {
	mu    sync.Mutex
	path  string
	quota int64
	data  map[string]string
}

// OpenFile loads (or creates) a file store at path. quota caps the serialized
// document size in bytes; zero or negative disables the cap.
func OpenFile(path string, quota int64) (*FileStore, error) {
	s := &FileStore{
		path:  path,
		quota: quota,
		data:  make(map[string]string),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", path, err)
	}
	return s, nil
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key and flushes the document to disk. Returns
// ErrQuotaExceeded, with the store unchanged, when the new document would
// exceed the quota.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.data)+1)
	for k, v := range s.data {
		next[k] = v
	}
	next[key] = value

	doc, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	if s.quota > 0 && int64(len(doc)) > s.quota {
		return ErrQuotaExceeded
	}

	if err := s.flush(doc); err != nil {
		return err
	}
	s.data = next
	return nil
}

// UsedBytes reports the serialized size of the current document.
func (s *FileStore) UsedBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := json.Marshal(s.data)
	if err != nil {
		return 0
	}
	return int64(len(doc))
}

func (s *FileStore) flush(doc []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close store file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
