package operation

import (
	"context"
	"errors"
	"time"

	"github.com/go-logr/logr"

	"github.com/lwolf/dbautoscaler/pkg/helpers"
	"github.com/lwolf/dbautoscaler/pkg/opwire"
	"github.com/lwolf/dbautoscaler/pkg/snapshot"
	"github.com/lwolf/dbautoscaler/pkg/state"
	"github.com/lwolf/dbautoscaler/pkg/telemetry"
)

// StatusClient fetches the current status of a long-running operation.
type StatusClient interface {
	Status(ctx context.Context, s snapshot.Snapshot, operationID string) (opwire.OperationStatus, error)
}

// Tracker reconciles a possibly in-flight operation against its current
// status and persists the result (component E).
type Tracker struct {
	Status   StatusClient
	Counters *telemetry.Counters
	Log      logr.Logger
}

func NewTracker(status StatusClient, counters *telemetry.Counters, log logr.Logger) *Tracker {
	return &Tracker{Status: status, Counters: counters, Log: log.WithName("operation")}
}

// Reconcile polls the status of st's in-flight operation, if any, and
// folds the result back into the persisted state. If st has no in-flight
// operation it is a no-op and is returned unchanged. The mutated state is
// always persisted via store before Reconcile returns, on every branch.
func (t *Tracker) Reconcile(ctx context.Context, store state.Store, s snapshot.Snapshot, st state.PersistedState, now int64) (state.PersistedState, *Fulfillment, error) {
	if !st.InFlight() {
		return st, nil, nil
	}

	status, err := t.Status.Status(ctx, s, *st.ScalingOperationID)
	if err != nil {
		return t.completeByFallback(ctx, store, st, now, err)
	}

	if !status.Done {
		backfill(&st, status.Metadata, s.CurrentSize)
		if err := store.Update(ctx, st); err != nil {
			return st, nil, err
		}
		f := fulfillmentFromWire(status.Metadata.ExpectedFulfillmentPeriod)
		return st, &f, nil
	}

	if status.Error != nil {
		return t.completeByFailure(ctx, store, st, errors.New(status.Error.Message))
	}

	return t.completeBySuccess(ctx, store, st, status.Metadata, now)
}

func (t *Tracker) completeBySuccess(ctx context.Context, store state.Store, st state.PersistedState, meta opwire.OperationMetadata, now int64) (state.PersistedState, *Fulfillment, error) {
	endMillis := st.LastScalingTimestamp
	if parsed, ok := parseMillis(meta.EndTime); ok {
		endMillis = parsed
	} else {
		t.Log.Info("operation end time missing or unparseable, falling back to start time")
	}

	duration := endMillis - st.LastScalingTimestamp
	method := helpers.StringValue(st.ScalingMethod, "")
	prev := helpers.Int32Value(st.ScalingPreviousSize, 0)
	req := helpers.Int32Value(st.ScalingRequestedSize, 0)

	next := st.ClearInFlight()
	next.LastScalingCompleteTimestamp = helpers.PtrInt64(endMillis)
	if err := store.Update(ctx, next); err != nil {
		return st, nil, err
	}
	if t.Counters != nil {
		t.Counters.ScalingSucceeded.Inc()
		t.Counters.ScalingDuration(method, prev, req, time.Duration(duration)*time.Millisecond)
	}
	_ = now
	return next, nil, nil
}

func (t *Tracker) completeByFailure(ctx context.Context, store state.Store, st state.PersistedState, cause error) (state.PersistedState, *Fulfillment, error) {
	next := st.ClearInFlight()
	next.LastScalingTimestamp = 0
	next.LastScalingCompleteTimestamp = nil
	if err := store.Update(ctx, next); err != nil {
		return st, nil, err
	}
	if t.Counters != nil {
		t.Counters.ScalingFailed.Inc()
	}
	t.Log.Info("resize operation failed", "error", cause)
	return next, nil, nil
}

// completeByFallback treats a status-API error as success-by-fallback
// rather than as a failure, so the autoscaler never wedges on its own
// inability to observe the authoritative service.
func (t *Tracker) completeByFallback(ctx context.Context, store state.Store, st state.PersistedState, now int64, cause error) (state.PersistedState, *Fulfillment, error) {
	t.Log.Info("operation status unavailable, treating as completed by fallback", "error", cause)
	method := helpers.StringValue(st.ScalingMethod, "")
	prev := helpers.Int32Value(st.ScalingPreviousSize, 0)
	req := helpers.Int32Value(st.ScalingRequestedSize, 0)

	next := st.ClearInFlight()
	next.LastScalingCompleteTimestamp = helpers.PtrInt64(st.LastScalingTimestamp)
	if err := store.Update(ctx, next); err != nil {
		return st, nil, err
	}
	if t.Counters != nil {
		t.Counters.ScalingSucceeded.Inc()
		t.Counters.ScalingDuration(method, prev, req, 0)
	}
	_ = now
	return next, nil, nil
}

// backfill populates ScalingRequestedSize when an older state record
// predates that field, preferring the operation's own metadata and
// falling back to the snapshot's current size.
func backfill(st *state.PersistedState, meta opwire.OperationMetadata, currentSize int32) {
	if st.ScalingRequestedSize != nil {
		return
	}
	if meta.Instance != nil {
		if meta.Instance.NodeCount != nil {
			st.ScalingRequestedSize = meta.Instance.NodeCount
			return
		}
		if meta.Instance.ProcessingUnits != nil {
			st.ScalingRequestedSize = meta.Instance.ProcessingUnits
			return
		}
	}
	st.ScalingRequestedSize = helpers.PtrInt32(currentSize)
}

func parseMillis(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return 0, false
	}
	return ts.UnixMilli(), true
}

