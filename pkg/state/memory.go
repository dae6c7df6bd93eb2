package state

import (
	"context"
	"sync"
)

// memoryStore is a process-local Store backed by a guarded map, standing
// in for a live backend in tests and in deployments that don't have one
// configured.
type memoryStore struct {
	mu    *sync.Mutex
	table map[string]PersistedState
	key   string
}

// MemoryFactory is a Factory that keeps every key's state in a shared
// in-memory table, for tests and for the in-process ingress adapter when
// no durable backend is configured.
type MemoryFactory struct {
	mu    sync.Mutex
	table map[string]PersistedState
}

func NewMemoryFactory() *MemoryFactory {
	return &MemoryFactory{table: make(map[string]PersistedState)}
}

func (f *MemoryFactory) Open(_ context.Context, _ string, _ string, key string) (Store, error) {
	return &memoryStore{mu: &f.mu, table: f.table, key: key}, nil
}

func (s *memoryStore) Get(_ context.Context) (PersistedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.table[s.key]
	if !ok {
		return Idle(), nil
	}
	return v, nil
}

func (s *memoryStore) Update(_ context.Context, v PersistedState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table[s.key] = v
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
