// Package cooldown applies temporal policy to an admission decision: the
// pure function that decides whether enough time has passed since the
// last resize for a new one to be allowed.
package cooldown

import (
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/lwolf/dbautoscaler/pkg/snapshot"
	"github.com/lwolf/dbautoscaler/pkg/state"
)

// Evaluator decides admission using an injectable clock, the same pattern
// the core's other time-sensitive components use so tests never depend on
// wall-clock time.
type Evaluator struct {
	Clock clock.Clock
	Log   logr.Logger
}

func NewEvaluator(log logr.Logger) *Evaluator {
	return &Evaluator{Clock: clock.RealClock{}, Log: log.WithName("cooldown")}
}

// Admit reports whether a resize to suggestedSize may proceed right now.
// It neither reads nor writes state and never blocks; logging is its only
// side effect.
func (e *Evaluator) Admit(s snapshot.Snapshot, suggestedSize int32, st state.PersistedState) bool {
	return e.AdmitAt(s, suggestedSize, st, e.Clock.Now().UnixMilli())
}

// AdmitAt is Admit with an explicit "now", for deterministic tests.
func (e *Evaluator) AdmitAt(s snapshot.Snapshot, suggestedSize int32, st state.PersistedState, nowMillis int64) bool {
	scaleOut := suggestedSize > s.CurrentSize

	cooldownMinutes := s.ScaleInCoolingMinutes
	if scaleOut {
		cooldownMinutes = s.ScaleOutCoolingMinutes
	}
	if s.IsOverloaded {
		if s.OverloadCoolingMinutes != nil {
			cooldownMinutes = *s.OverloadCoolingMinutes
		} else {
			e.Log.Info("overloadCoolingMinutes unset, falling back to scale-out cooldown",
				"instance", s.InstanceID)
			cooldownMinutes = s.ScaleOutCoolingMinutes
		}
	}

	reference := st.Reference()
	if reference == 0 {
		return true
	}
	elapsed := time.Duration(nowMillis-reference) * time.Millisecond
	return elapsed >= time.Duration(cooldownMinutes)*time.Minute
}
