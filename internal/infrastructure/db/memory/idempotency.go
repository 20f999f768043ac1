package memory

import (
	"context"
	"sync"
)

// IdempotencyStore is the process-local counterpart of the Redis store.
// Keys never expire.
type IdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]string // key -> order ID, "" while in flight
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{keys: make(map[string]string)}
}

func (s *IdempotencyStore) Claim(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if orderID, ok := s.keys[key]; ok {
		return orderID, false, nil
	}
	s.keys[key] = ""
	return "", true, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, key, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys[key] = orderID
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.keys, key)
	return nil
}
