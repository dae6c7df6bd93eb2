package state

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dbautoscaler:state:"

// redisStore persists PersistedState as a single JSON value per key,
// using the same Get/Set-by-string idiom as the rest of the client's
// callers.
type redisStore struct {
	client redis.UniversalClient
	key    string
	log    logr.Logger
}

// RedisFactory opens a Store against a shared redis.UniversalClient — one
// client per process, one logical key per (project, instance) tick.
type RedisFactory struct {
	Client redis.UniversalClient
	Log    logr.Logger
}

func NewRedisFactory(client redis.UniversalClient, log logr.Logger) *RedisFactory {
	return &RedisFactory{Client: client, Log: log}
}

func (f *RedisFactory) Open(_ context.Context, _ string, _ string, key string) (Store, error) {
	return &redisStore{client: f.Client, key: keyPrefix + key, log: f.Log.WithValues("key", key)}, nil
}

func (s *redisStore) Get(ctx context.Context) (PersistedState, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return Idle(), nil
	}
	if err != nil {
		return PersistedState{}, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	var v PersistedState
	if err := json.Unmarshal(raw, &v); err != nil {
		return PersistedState{}, fmt.Errorf("redis get %s: decode: %w", s.key, err)
	}
	return v, nil
}

func (s *redisStore) Update(ctx context.Context, v PersistedState) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("redis set %s: encode: %w", s.key, err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *redisStore) Close() error {
	return nil
}
