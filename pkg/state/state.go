// Package state models the durable per-instance scaling record and the
// adapter that reads/writes a single such record per tick.
package state

// PersistedState is the one durable record kept per (project, instance).
// Invariants:
//   - ScalingOperationID == nil  =>  Method/PreviousSize/RequestedSize are
//     all nil (idle-state cleanliness).
//   - ScalingOperationID != nil  =>  LastScalingTimestamp > 0 and
//     LastScalingCompleteTimestamp is nil.
//   - LastScalingCompleteTimestamp >= LastScalingTimestamp whenever both
//     are non-zero.
type PersistedState struct {
	ScalingOperationID *string `json:"scalingOperationId,omitempty"`

	LastScalingTimestamp         int64  `json:"lastScalingTimestamp"`
	LastScalingCompleteTimestamp *int64 `json:"lastScalingCompleteTimestamp,omitempty"`

	ScalingMethod       *string `json:"scalingMethod,omitempty"`
	ScalingPreviousSize *int32  `json:"scalingPreviousSize,omitempty"`
	ScalingRequestedSize *int32 `json:"scalingRequestedSize,omitempty"`
}

// InFlight reports whether a resize operation is currently in progress.
func (s PersistedState) InFlight() bool {
	return s.ScalingOperationID != nil
}

// Reference returns the timestamp cooldown decisions are measured from:
// the completion time if known, otherwise the start time.
func (s PersistedState) Reference() int64 {
	if s.LastScalingCompleteTimestamp != nil {
		return *s.LastScalingCompleteTimestamp
	}
	return s.LastScalingTimestamp
}

// Idle returns the zero-value record used when no state exists yet for an
// instance.
func Idle() PersistedState {
	return PersistedState{}
}

// ClearInFlight returns a copy of s with the four in-flight fields reset to
// nil/idle, used both on successful completion and on failure.
func (s PersistedState) ClearInFlight() PersistedState {
	s.ScalingOperationID = nil
	s.ScalingMethod = nil
	s.ScalingPreviousSize = nil
	s.ScalingRequestedSize = nil
	return s
}
