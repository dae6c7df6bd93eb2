// Package ingress defines the common interface the three snapshot
// ingress adapters (HTTP JSON, message-bus envelope, direct in-process
// call) drive, and exposes Ticker.Tick directly for adapter (c).
package ingress

import (
	"context"

	"github.com/lwolf/dbautoscaler/pkg/orchestrator"
	"github.com/lwolf/dbautoscaler/pkg/snapshot"
)

// Ticker is satisfied by *orchestrator.Orchestrator. Adapters depend on
// this narrow interface rather than the concrete orchestrator type.
type Ticker interface {
	Tick(ctx context.Context, s snapshot.Snapshot) (orchestrator.Decision, error)
}
