package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/redis/go-redis/v9"
)

// BackendFactory dispatches to the concrete Factory named by a snapshot's
// StateStoreBackend field. "redis" opens a connection against
// StateStoreAddr lazily (one client per address, reused across ticks);
// "memory" or the empty string selects an in-memory store, which is never
// durable across process restarts but keeps the core usable without a
// configured backend, e.g. in tests. Any other backend name is an error.
type BackendFactory struct {
	Log logr.Logger

	mem     *MemoryFactory
	mu      sync.Mutex
	clients map[string]redis.UniversalClient
}

func NewBackendFactory(log logr.Logger) *BackendFactory {
	return &BackendFactory{
		Log:     log,
		mem:     NewMemoryFactory(),
		clients: make(map[string]redis.UniversalClient),
	}
}

func (f *BackendFactory) Open(ctx context.Context, backend, addr, key string) (Store, error) {
	switch backend {
	case "redis":
		if addr == "" {
			return nil, fmt.Errorf("state: redis backend requires stateStoreAddr")
		}
		f.mu.Lock()
		client, ok := f.clients[addr]
		if !ok {
			client = redis.NewClient(&redis.Options{Addr: addr})
			f.clients[addr] = client
		}
		f.mu.Unlock()
		return NewRedisFactory(client, f.Log).Open(ctx, backend, addr, key)
	case "", "memory":
		return f.mem.Open(ctx, backend, addr, key)
	default:
		return nil, fmt.Errorf("state: unknown store backend %q", backend)
	}
}
