package sizing

import "github.com/lwolf/dbautoscaler/pkg/snapshot"

// Direct is a no-op pass-through strategy: it always suggests the
// current size, clamped. Useful for manual overrides and as a safe
// always-available fallback.
type Direct struct{}

func NewDirect() *Direct { return &Direct{} }

func (Direct) Suggest(s snapshot.Snapshot) (int32, error) {
	return clamp(s.CurrentSize, s.MinSize, s.MaxSize), nil
}

// SuggestLegacy makes Direct also satisfy LegacyStrategy by delegating to
// Suggest. Because Direct implements Strategy, sizing.Suggest always calls
// Suggest and never reaches this method.
func (d Direct) SuggestLegacy(s snapshot.Snapshot) int32 {
	v, _ := d.Suggest(s)
	return v
}
