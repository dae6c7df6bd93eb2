package events

import (
	"context"

	"github.com/lwolf/dbautoscaler/pkg/snapshot"
)

// MemoryEmitter records every event it was asked to publish, for tests.
type MemoryEmitter struct {
	Err    error
	Events []Published
}

type Published struct {
	Name          Name
	Snapshot      snapshot.Snapshot
	SuggestedSize int32
}

func (e *MemoryEmitter) Emit(_ context.Context, name Name, s snapshot.Snapshot, suggestedSize int32) error {
	e.Events = append(e.Events, Published{Name: name, Snapshot: s, SuggestedSize: suggestedSize})
	return e.Err
}
