package events

import (
	"context"

	"github.com/lwolf/dbautoscaler/pkg/snapshot"
)

// Emitter publishes a named lifecycle event for an instance. Implementers
// must never return an error the caller is expected to act on; Emit is
// best-effort by contract, so the orchestrator only logs what Emit
// returns and moves on.
type Emitter interface {
	Emit(ctx context.Context, name Name, s snapshot.Snapshot, suggestedSize int32) error
}
