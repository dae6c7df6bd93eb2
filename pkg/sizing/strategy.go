// Package sizing holds the pluggable sizing strategies and the registry
// that resolves a snapshot's named method to one of them.
package sizing

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/lwolf/dbautoscaler/pkg/snapshot"
)

// DefaultMethod is substituted whenever a snapshot names an unknown
// strategy.
const DefaultMethod = "STEPWISE"

// Strategy is a pure, total function of a snapshot: observed state in,
// suggested size out. Implementations must clamp their result to
// [snapshot.MinSize, snapshot.MaxSize].
type Strategy interface {
	Suggest(s snapshot.Snapshot) (int32, error)
}

// LegacyStrategy is the deprecated single-method form some older
// strategies may still only implement. The package-level Suggest prefers
// Strategy.Suggest and falls back to SuggestLegacy with a deprecation
// warning.
type LegacyStrategy interface {
	SuggestLegacy(s snapshot.Snapshot) int32
}

// clamp restricts size to [min, max], the post-condition every shipped
// strategy must satisfy before returning.
func clamp(size, min, max int32) int32 {
	if size < min {
		return min
	}
	if size > max {
		return max
	}
	return size
}

// Suggest calls the resolved method's Suggest, falling back to
// SuggestLegacy with a deprecation warning when only the legacy operation
// is present. Returns an error if resolved implements neither.
func Suggest(log logr.Logger, resolved interface{}, s snapshot.Snapshot) (int32, error) {
	if strat, ok := resolved.(Strategy); ok {
		return strat.Suggest(s)
	}
	if legacy, ok := resolved.(LegacyStrategy); ok {
		log.Info("scaling method only implements the deprecated suggestLegacy operation", "method", s.ScalingMethod)
		return clamp(legacy.SuggestLegacy(s), s.MinSize, s.MaxSize), nil
	}
	return 0, fmt.Errorf("sizing: resolved method implements no known sizing operation")
}
