package cooldown

import (
	"testing"

	"github.com/go-logr/logr/testr"

	"github.com/lwolf/dbautoscaler/pkg/snapshot"
	"github.com/lwolf/dbautoscaler/pkg/state"
)

func int32p(v int32) *int32 { return &v }

func baseSnapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		InstanceID:             "i",
		CurrentSize:            4,
		ScaleOutCoolingMinutes: 10,
		ScaleInCoolingMinutes:  20,
	}
}

func TestAdmitAt(t *testing.T) {
	e := &Evaluator{Log: testr.New(t)}

	tests := map[string]struct {
		snapshot      snapshot.Snapshot
		suggestedSize int32
		state         state.PersistedState
		now           int64
		want          bool
	}{
		"zero reference admits unconditionally": {
			snapshot:      baseSnapshot(),
			suggestedSize: 5,
			state:         state.Idle(),
			now:           1_000_000,
			want:          true,
		},
		"scale-out within cooldown is denied": {
			snapshot:      baseSnapshot(),
			suggestedSize: 5,
			state:         state.PersistedState{LastScalingTimestamp: 1, LastScalingCompleteTimestamp: int64p(1)},
			now:           5 * 60_000,
			want:          false,
		},
		"scale-out past cooldown is admitted": {
			snapshot:      baseSnapshot(),
			suggestedSize: 5,
			state:         state.PersistedState{LastScalingCompleteTimestamp: int64p(1)},
			now:           1 + 11*60_000,
			want:          true,
		},
		"scale-in uses the longer scale-in cooldown": {
			snapshot:      baseSnapshot(),
			suggestedSize: 3,
			state:         state.PersistedState{LastScalingCompleteTimestamp: int64p(1)},
			now:           1 + 11*60_000,
			want:          false,
		},
		"overloaded uses overload cooldown when set": {
			snapshot: func() snapshot.Snapshot {
				s := baseSnapshot()
				s.IsOverloaded = true
				s.OverloadCoolingMinutes = int32p(1)
				return s
			}(),
			suggestedSize: 5,
			state:         state.PersistedState{LastScalingCompleteTimestamp: int64p(1)},
			now:           1 + 2*60_000,
			want:          true,
		},
		"overloaded falls back to scale-out cooldown when unset": {
			snapshot: func() snapshot.Snapshot {
				s := baseSnapshot()
				s.IsOverloaded = true
				return s
			}(),
			suggestedSize: 5,
			state:         state.PersistedState{LastScalingCompleteTimestamp: int64p(1)},
			now:           1 + 2*60_000,
			want:          false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := e.AdmitAt(tc.snapshot, tc.suggestedSize, tc.state, tc.now); got != tc.want {
				t.Errorf("AdmitAt() = %v, want %v", got, tc.want)
			}
		})
	}
}

func int64p(v int64) *int64 { return &v }
