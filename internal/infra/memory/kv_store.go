package memory

import (
	"context"
	"sync"
)

// KVStore is an in-memory implementation of app.KVStore, used when no Redis is
// configured and throughout the unit tests.
type KVStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewKVStore() *KVStore {
	return &KVStore{slots: make(map[string][]byte)}
}

func (s *KVStore) Load(_ context.Context, slot string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.slots[slot]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (s *KVStore) Save(_ context.Context, slot string, data []byte) error {
	s.mu.Lock()
	s.slots[slot] = append([]byte(nil), data...)
	s.mu.Unlock()
	return nil
}
