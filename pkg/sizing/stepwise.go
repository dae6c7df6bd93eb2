package sizing

import "github.com/lwolf/dbautoscaler/pkg/snapshot"

// stepTable maps "how many metrics are driving the decision" to a step
// size, generalizing a threshold/margin-driven rate estimate into a
// fixed step over an integral size.
var stepTable = []int32{0, 1, 2, 4, 6, 8}

func stepFor(n int) int32 {
	if n >= len(stepTable) {
		return stepTable[len(stepTable)-1]
	}
	return stepTable[n]
}

// Stepwise suggests current size +/- a step proportional to how many
// metrics are outside their [threshold*(1-margin), threshold*(1+margin)]
// band. A metric with a zero threshold is skipped (nothing to divide by).
type Stepwise struct{}

func NewStepwise() *Stepwise { return &Stepwise{} }

func (Stepwise) Suggest(s snapshot.Snapshot) (int32, error) {
	if len(s.Metrics) == 0 {
		return s.CurrentSize, nil
	}
	var over, under int
	for _, m := range s.Metrics {
		if m.Threshold == 0 {
			continue
		}
		ratio := m.Value / m.Threshold
		switch {
		case ratio > 1+m.Margin:
			over++
		case ratio < 1-m.Margin:
			under++
		}
	}

	var target int32
	switch {
	case over > 0:
		target = s.CurrentSize + stepFor(over)
	case under > 0 && under == len(s.Metrics):
		target = s.CurrentSize - stepFor(under)
	default:
		target = s.CurrentSize
	}
	return clamp(target, s.MinSize, s.MaxSize), nil
}
