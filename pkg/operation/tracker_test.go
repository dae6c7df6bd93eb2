package operation

import (
	"context"
	"testing"

	"github.com/go-logr/logr/testr"

	"github.com/lwolf/dbautoscaler/pkg/opwire"
	"github.com/lwolf/dbautoscaler/pkg/snapshot"
	"github.com/lwolf/dbautoscaler/pkg/state"
	"github.com/lwolf/dbautoscaler/pkg/telemetry"
)

func strp(v string) *string { return &v }
func int32p(v int32) *int32 { return &v }

func inFlightState() state.PersistedState {
	return state.PersistedState{
		ScalingOperationID:   strp("op-1"),
		LastScalingTimestamp: 1_000,
		ScalingMethod:        strp("stepwise"),
		ScalingPreviousSize:  int32p(3),
		ScalingRequestedSize: int32p(4),
	}
}

func TestReconcileNoOpWhenIdle(t *testing.T) {
	store := mustOpen(t, state.NewMemoryFactory())
	tr := &Tracker{Status: &MemoryStatusClient{}, Counters: telemetry.NewUnregistered(), Log: testr.New(t)}

	got, fulfillment, err := tr.Reconcile(context.Background(), store, snapshot.Snapshot{}, state.Idle(), 0)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if fulfillment != nil {
		t.Errorf("Reconcile() fulfillment = %v, want nil for idle state", fulfillment)
	}
	if got.InFlight() {
		t.Errorf("Reconcile() unexpectedly marked idle state in-flight")
	}
}

func TestReconcileStillRunning(t *testing.T) {
	mf := state.NewMemoryFactory()
	store := mustOpen(t, mf)
	status := &MemoryStatusClient{Result: opwire.OperationStatus{
		Done:     false,
		Metadata: opwire.OperationMetadata{ExpectedFulfillmentPeriod: "EXTENDED"},
	}}
	tr := &Tracker{Status: status, Counters: telemetry.NewUnregistered(), Log: testr.New(t)}

	got, fulfillment, err := tr.Reconcile(context.Background(), store, snapshot.Snapshot{CurrentSize: 4}, inFlightState(), 2_000)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if fulfillment == nil || *fulfillment != FulfillmentExtended {
		t.Errorf("Reconcile() fulfillment = %v, want Extended", fulfillment)
	}
	if !got.InFlight() {
		t.Errorf("Reconcile() cleared in-flight state while still running")
	}
}

func TestReconcileSucceeded(t *testing.T) {
	mf := state.NewMemoryFactory()
	store := mustOpen(t, mf)
	status := &MemoryStatusClient{Result: opwire.OperationStatus{
		Done:     true,
		Metadata: opwire.OperationMetadata{EndTime: "2024-01-01T00:00:01Z"},
	}}
	tr := &Tracker{Status: status, Counters: telemetry.NewUnregistered(), Log: testr.New(t)}

	got, fulfillment, err := tr.Reconcile(context.Background(), store, snapshot.Snapshot{CurrentSize: 4}, inFlightState(), 2_000)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if fulfillment != nil {
		t.Errorf("Reconcile() fulfillment = %v, want nil on success", fulfillment)
	}
	if got.InFlight() {
		t.Errorf("Reconcile() left in-flight state set after success")
	}
	if got.LastScalingCompleteTimestamp == nil {
		t.Errorf("Reconcile() did not set LastScalingCompleteTimestamp on success")
	}
}

func TestReconcileFailed(t *testing.T) {
	mf := state.NewMemoryFactory()
	store := mustOpen(t, mf)
	status := &MemoryStatusClient{Result: opwire.OperationStatus{
		Done:  true,
		Error: &opwire.OperationError{Message: "resize rejected"},
	}}
	tr := &Tracker{Status: status, Counters: telemetry.NewUnregistered(), Log: testr.New(t)}

	got, _, err := tr.Reconcile(context.Background(), store, snapshot.Snapshot{CurrentSize: 4}, inFlightState(), 2_000)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if got.InFlight() {
		t.Errorf("Reconcile() left in-flight state set after failure")
	}
	if got.LastScalingTimestamp != 0 || got.LastScalingCompleteTimestamp != nil {
		t.Errorf("Reconcile() did not zero timestamps on failure: %+v", got)
	}
}

func TestReconcileStatusErrorFallsBackToSuccess(t *testing.T) {
	mf := state.NewMemoryFactory()
	store := mustOpen(t, mf)
	status := &MemoryStatusClient{Err: context.DeadlineExceeded}
	tr := &Tracker{Status: status, Counters: telemetry.NewUnregistered(), Log: testr.New(t)}

	got, _, err := tr.Reconcile(context.Background(), store, snapshot.Snapshot{CurrentSize: 4}, inFlightState(), 2_000)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if got.InFlight() {
		t.Errorf("Reconcile() left in-flight state set after status-error fallback")
	}
	if got.LastScalingCompleteTimestamp == nil || *got.LastScalingCompleteTimestamp != 1_000 {
		t.Errorf("Reconcile() fallback completion = %v, want 1000 (lastScalingTimestamp)", got.LastScalingCompleteTimestamp)
	}
}

func mustOpen(t *testing.T, f *state.MemoryFactory) state.Store {
	t.Helper()
	if f == nil {
		f = state.NewMemoryFactory()
	}
	s, err := f.Open(context.Background(), "", "", "p/i")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}
