package memory

import (
	"context"
	"sync"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/providers"
)

// KVStore is an in-process KeyValueStore. It is the default backend and the one tests use.
type KVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewKVStore creates an empty store
func NewKVStore() *KVStore {
	return &KVStore{values: make(map[string][]byte)}
}

var _ providers.KeyValueStore = (*KVStore)(nil)

// Load returns a copy of the value under key
func (s *KVStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Save stores a copy of value under key
func (s *KVStore) Save(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.values[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}

// SaveBatch stores every entry under one lock
func (s *KVStore) SaveBatch(ctx context.Context, entries map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range entries {
		s.values[key] = append([]byte(nil), value...)
	}
	return nil
}
