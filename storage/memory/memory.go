// Package memory provides a process-local in-memory implementation of
// storage.Store.
package memory

import (
	"context"
	"sync"

	"github.com/docsgate/docsgate/storage"
)

// Store is a mutex-guarded in-memory storage.Store. It is the fallback when
// no durable backend is configured, and the backend of choice in tests: each
// test constructs its own instance, nothing is ambient. Contents are lost on
// process exit, and separate process instances do not share state.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory Store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Load(ctx context.Context, collection string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[collection]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (s *Store) Save(ctx context.Context, collection string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[collection] = append([]byte(nil), data...)
	return nil
}

func (s *Store) Close() error { return nil }
