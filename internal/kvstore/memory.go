package kvstore

import (
	"encoding/json"
	"sync"
)

// MemoryStore is a volatile KV implementation for tests.
type MemoryStore struct {
	mu    sync.Mutex
	quota int64
	data  map[string]string
}

// NewMemory returns an empty in-memory store with no quota.
func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// NewMemoryWithQuota returns an empty in-memory store capped at quota bytes
// of serialized document size.
func NewMemoryWithQuota(quota int64) *MemoryStore {
	return &MemoryStore{quota: quota, data: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key, enforcing the quota the same way FileStore does.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		next := make(map[string]string, len(s.data)+1)
		for k, v := range s.data {
			next[k] = v
		}
		next[key] = value
		doc, err := json.Marshal(next)
		if err != nil {
			return err
		}
		if int64(len(doc)) > s.quota {
			return ErrQuotaExceeded
		}
	}

	s.data[key] = value
	return nil
}

// UsedBytes reports the serialized size of the current document.
func (s *MemoryStore) UsedBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := json.Marshal(s.data)
	if err != nil {
		return 0
	}
	return int64(len(doc))
}
