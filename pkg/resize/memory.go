package resize

import (
	"context"

	"github.com/google/uuid"

	"github.com/lwolf/dbautoscaler/pkg/snapshot"
)

// MemoryDriver is a test double standing in for the resize API: it hands
// out a fresh UUID per call and records every call it received, or
// returns Err if set.
type MemoryDriver struct {
	Err   error
	Calls []MemoryCall
}

type MemoryCall struct {
	Snapshot   snapshot.Snapshot
	TargetSize int32
}

func (d *MemoryDriver) Start(_ context.Context, s snapshot.Snapshot, targetSize int32) (string, error) {
	if d.Err != nil {
		return "", d.Err
	}
	d.Calls = append(d.Calls, MemoryCall{Snapshot: s, TargetSize: targetSize})
	return uuid.NewString(), nil
}
