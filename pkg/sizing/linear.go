package sizing

import (
	"math"

	"github.com/lwolf/dbautoscaler/pkg/snapshot"
)

// Linear suggests a size proportional to the worst metric's utilization
// ratio, in the style of the Kubernetes HPA formula
// `desired = ceil(current * (observed / target))` used by
// mit-pdos-sigmaos's autoscale.Autoscaler.autoscalingRound, adapted from a
// replica count to an integral instance size.
type Linear struct{}

func NewLinear() *Linear { return &Linear{} }

func (Linear) Suggest(s snapshot.Snapshot) (int32, error) {
	if len(s.Metrics) == 0 {
		return s.CurrentSize, nil
	}
	worstRatio := 0.0
	for _, m := range s.Metrics {
		if m.Threshold == 0 {
			continue
		}
		ratio := m.Value / m.Threshold
		if ratio > worstRatio {
			worstRatio = ratio
		}
	}
	if worstRatio == 0 {
		return s.CurrentSize, nil
	}
	target := int32(math.Ceil(float64(s.CurrentSize) * worstRatio))
	return clamp(target, s.MinSize, s.MaxSize), nil
}
