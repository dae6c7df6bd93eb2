package state

import "testing"

func TestReference(t *testing.T) {
	tests := map[string]struct {
		s    PersistedState
		want int64
	}{
		"idle record":               {s: Idle(), want: 0},
		"only started":              {s: PersistedState{LastScalingTimestamp: 100}, want: 100},
		"started and completed":     {s: PersistedState{LastScalingTimestamp: 100, LastScalingCompleteTimestamp: int64p(150)}, want: 150},
		"completed zeroed by fail":  {s: PersistedState{LastScalingTimestamp: 0, LastScalingCompleteTimestamp: int64p(0)}, want: 0},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tc.s.Reference(); got != tc.want {
				t.Errorf("Reference() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestClearInFlight(t *testing.T) {
	s := PersistedState{
		ScalingOperationID:   strp("op-1"),
		LastScalingTimestamp: 100,
		ScalingMethod:        strp("STEPWISE"),
		ScalingPreviousSize:  int32p(1),
		ScalingRequestedSize: int32p(3),
	}
	cleared := s.ClearInFlight()
	if cleared.InFlight() {
		t.Errorf("ClearInFlight() left ScalingOperationID set")
	}
	if cleared.ScalingMethod != nil || cleared.ScalingPreviousSize != nil || cleared.ScalingRequestedSize != nil {
		t.Errorf("ClearInFlight() left in-flight metadata set: %+v", cleared)
	}
	if cleared.LastScalingTimestamp != 100 {
		t.Errorf("ClearInFlight() must not touch LastScalingTimestamp")
	}
}

func int64p(v int64) *int64 { return &v }
func int32p(v int32) *int32 { return &v }
func strp(v string) *string { return &v }
