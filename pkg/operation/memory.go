package operation

import (
	"context"

	"github.com/lwolf/dbautoscaler/pkg/opwire"
	"github.com/lwolf/dbautoscaler/pkg/snapshot"
)

// MemoryStatusClient is a test double returning a scripted status (or
// error) regardless of which operation id is asked about.
type MemoryStatusClient struct {
	Result opwire.OperationStatus
	Err    error
	Calls  []string
}

func (c *MemoryStatusClient) Status(_ context.Context, _ snapshot.Snapshot, operationID string) (opwire.OperationStatus, error) {
	c.Calls = append(c.Calls, operationID)
	if c.Err != nil {
		return opwire.OperationStatus{}, c.Err
	}
	return c.Result, nil
}
