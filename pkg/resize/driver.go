// Package resize issues the resize request that starts a long-running
// operation. Polling that operation's status is done by pkg/operation.
package resize

import (
	"context"

	"github.com/lwolf/dbautoscaler/pkg/snapshot"
)

// Driver submits a resize and returns the opaque operation id the
// long-running-operation status API will recognize. Any failure is
// reported to the caller — there is no retry here.
type Driver interface {
	Start(ctx context.Context, s snapshot.Snapshot, targetSize int32) (operationID string, err error)
}
