// Package orchestrator composes the sizing registry, state store,
// operation tracker, cooldown evaluator, resize driver, downstream
// emitter, and counters facade into the single per-tick algorithm.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/lwolf/dbautoscaler/pkg/cooldown"
	autoerrors "github.com/lwolf/dbautoscaler/pkg/errors"
	"github.com/lwolf/dbautoscaler/pkg/events"
	"github.com/lwolf/dbautoscaler/pkg/helpers"
	"github.com/lwolf/dbautoscaler/pkg/operation"
	"github.com/lwolf/dbautoscaler/pkg/resize"
	"github.com/lwolf/dbautoscaler/pkg/sizing"
	"github.com/lwolf/dbautoscaler/pkg/snapshot"
	"github.com/lwolf/dbautoscaler/pkg/state"
	"github.com/lwolf/dbautoscaler/pkg/telemetry"
)

// Orchestrator is the top-level per-tick controller.
type Orchestrator struct {
	Registry *sizing.Registry
	Stores   state.Factory
	Tracker  *operation.Tracker
	Cooldown *cooldown.Evaluator
	Driver   resize.Driver
	Emitter  events.Emitter
	Counters *telemetry.Counters
	Log      logr.Logger
	Clock    clock.Clock
}

func New(
	registry *sizing.Registry,
	stores state.Factory,
	tracker *operation.Tracker,
	evaluator *cooldown.Evaluator,
	driver resize.Driver,
	emitter events.Emitter,
	counters *telemetry.Counters,
	log logr.Logger,
) *Orchestrator {
	return &Orchestrator{
		Registry: registry,
		Stores:   stores,
		Tracker:  tracker,
		Cooldown: evaluator,
		Driver:   driver,
		Emitter:  emitter,
		Counters: counters,
		Log:      log.WithName("orchestrator"),
		Clock:    clock.RealClock{},
	}
}

// Tick runs one pass of the algorithm for a single instance snapshot.
func (o *Orchestrator) Tick(ctx context.Context, s snapshot.Snapshot) (Decision, error) {
	o.Counters.Tick(s.InstanceID)

	if err := s.Validate(); err != nil {
		o.Counters.RequestFailed(s.InstanceID)
		return Decision{}, autoerrors.Wrap(autoerrors.CategoryValidation, err)
	}

	store, err := o.Stores.Open(ctx, s.StateStoreBackend, s.StateStoreAddr, s.Key())
	if err != nil {
		o.Counters.RequestFailed(s.InstanceID)
		return Decision{}, autoerrors.Wrap(autoerrors.CategoryStateStore, err)
	}
	defer store.Close()

	st, err := store.Get(ctx)
	if err != nil {
		o.Counters.RequestFailed(s.InstanceID)
		return Decision{}, autoerrors.Wrap(autoerrors.CategoryStateStore, err)
	}

	now := o.Clock.Now().UnixMilli()
	st, fulfillment, err := o.Tracker.Reconcile(ctx, store, s, st, now)
	if err != nil {
		o.Counters.RequestFailed(s.InstanceID)
		return Decision{}, autoerrors.Wrap(autoerrors.CategoryStateStore, err)
	}

	resolved, methodName := o.Registry.Resolve(s.ScalingMethod)
	s.ScalingMethod = methodName

	suggested, err := sizing.Suggest(o.Log, resolved, s)
	if err != nil {
		o.Counters.RequestFailed(s.InstanceID)
		return Decision{}, autoerrors.Wrap(autoerrors.CategorySizingStrategy, err)
	}

	o.Counters.RequestSuccess(s.InstanceID)
	o.Counters.CurrentSize(s.InstanceID, s.CurrentSize)

	if suggested == s.CurrentSize {
		reason := DenialCurrentSize
		if s.CurrentSize == s.MaxSize {
			reason = DenialMaxSize
		}
		o.Counters.Denied(s.InstanceID, string(reason))
		return Decision{Outcome: OutcomeDenied, DenialReason: reason, SuggestedSize: suggested}, nil
	}

	if st.InFlight() {
		if fulfillment != nil && *fulfillment == operation.FulfillmentExtended &&
			st.ScalingRequestedSize != nil && *st.ScalingRequestedSize != suggested {
			o.Log.Info("in-flight operation's target has diverged from the freshly computed target",
				"instance", s.InstanceID, "inFlightTarget", *st.ScalingRequestedSize, "suggested", suggested)
		}
		o.Counters.Denied(s.InstanceID, string(DenialInProgress))
		return Decision{Outcome: OutcomeDenied, DenialReason: DenialInProgress, SuggestedSize: suggested}, nil
	}

	if !o.Cooldown.AdmitAt(s, suggested, st, now) {
		o.Counters.Denied(s.InstanceID, string(DenialWithinCooldown))
		return Decision{Outcome: OutcomeDenied, DenialReason: DenialWithinCooldown, SuggestedSize: suggested}, nil
	}

	opID, startErr := o.Driver.Start(ctx, s, suggested)
	if startErr != nil {
		o.Counters.ScalingFailed.Inc()
		o.Counters.ResizeError(s.InstanceID)
		if emitErr := o.Emitter.Emit(ctx, events.ScalingFailure, s, suggested); emitErr != nil {
			o.Log.Info("failed to publish scaling failure event", "error", emitErr)
		}
		return Decision{Outcome: OutcomeFailed, SuggestedSize: suggested,
			Err: autoerrors.Wrap(autoerrors.CategoryResizeSubmit, startErr)}, nil
	}

	next := state.PersistedState{
		ScalingOperationID:   helpers.PtrString(opID),
		LastScalingTimestamp: now,
		ScalingMethod:        helpers.PtrString(s.ScalingMethod),
		ScalingPreviousSize:  helpers.PtrInt32(s.CurrentSize),
		ScalingRequestedSize: helpers.PtrInt32(suggested),
	}
	if err := store.Update(ctx, next); err != nil {
		return Decision{}, autoerrors.Wrap(autoerrors.CategoryStateStore, fmt.Errorf("persist started operation: %w", err))
	}

	o.Counters.ResizeStart(s.InstanceID, s.ScalingMethod)
	if emitErr := o.Emitter.Emit(ctx, events.Scaling, s, suggested); emitErr != nil {
		o.Log.Info("failed to publish scaling event", "error", emitErr)
	}

	return Decision{Outcome: OutcomeStarted, SuggestedSize: suggested, OperationID: opID}, nil
}
