// Package events publishes scaling lifecycle events to a downstream bus
// (component H). Publication is best-effort: Emit returns a failure to the
// orchestrator, which logs it and never fails the tick because of it.
package events

import "github.com/lwolf/dbautoscaler/pkg/snapshot"

// Name is the closed set of event names the orchestrator emits.
type Name string

const (
	Scaling        Name = "SCALING"
	ScalingFailure Name = "SCALING_FAILURE"
)

// DownstreamEvent is the wire-exact payload published for every event.
type DownstreamEvent struct {
	ProjectID     string          `json:"project_id"`
	InstanceID    string          `json:"instance_id"`
	CurrentSize   *int32          `json:"current_size,omitempty"`
	SuggestedSize *int32          `json:"suggested_size,omitempty"`
	Units         *int32          `json:"units,omitempty"`
	Metrics       []MetricPayload `json:"metrics,omitempty"`
}

// MetricPayload mirrors snapshot.Metric in the field order and naming the
// downstream bus expects.
type MetricPayload struct {
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
	Value     float64 `json:"value"`
	Margin    float64 `json:"margin"`
}

func newEvent(s snapshot.Snapshot, suggestedSize int32) DownstreamEvent {
	units := int32(s.Units)
	metrics := make([]MetricPayload, len(s.Metrics))
	for i, m := range s.Metrics {
		metrics[i] = MetricPayload{Name: m.Name, Threshold: m.Threshold, Value: m.Value, Margin: m.Margin}
	}
	return DownstreamEvent{
		ProjectID:     s.ProjectID,
		InstanceID:    s.InstanceID,
		CurrentSize:   &s.CurrentSize,
		SuggestedSize: &suggestedSize,
		Units:         &units,
		Metrics:       metrics,
	}
}
