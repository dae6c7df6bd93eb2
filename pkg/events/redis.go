package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/redis/go-redis/v9"

	"github.com/lwolf/dbautoscaler/pkg/snapshot"
)

// RedisEmitter publishes DownstreamEvent JSON to a Redis Pub/Sub channel
// named by the snapshot's downstream topic.
type RedisEmitter struct {
	Client redis.UniversalClient
	Log    logr.Logger
}

func NewRedisEmitter(client redis.UniversalClient, log logr.Logger) *RedisEmitter {
	return &RedisEmitter{Client: client, Log: log.WithName("events")}
}

func (e *RedisEmitter) Emit(ctx context.Context, name Name, s snapshot.Snapshot, suggestedSize int32) error {
	if s.DownstreamTopic == "" {
		return nil
	}
	payload, err := json.Marshal(newEvent(s, suggestedSize))
	if err != nil {
		return fmt.Errorf("events: encode %s: %w", name, err)
	}
	if err := e.Client.Publish(ctx, s.DownstreamTopic, payload).Err(); err != nil {
		return fmt.Errorf("events: publish %s to %s: %w", name, s.DownstreamTopic, err)
	}
	return nil
}
