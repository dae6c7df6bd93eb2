package sizing

import (
	"sync"

	"github.com/go-logr/logr"

	"github.com/lwolf/dbautoscaler/pkg/helpers"
)

// Registry is the closed name -> Strategy mapping, resolved at
// orchestration time rather than loaded at runtime. Safe for concurrent
// Resolve calls; Register is expected to happen once at startup.
type Registry struct {
	mu  sync.RWMutex
	log logr.Logger
	// m holds either a Strategy or a LegacyStrategy, never neither — see
	// Register.
	m map[string]interface{}
}

// NewRegistry returns a Registry pre-populated with the default strategy
// set (stepwise, linear, direct).
func NewRegistry(log logr.Logger) *Registry {
	r := &Registry{log: log.WithName("sizing"), m: make(map[string]interface{})}
	r.Register("stepwise", NewStepwise())
	r.Register("linear", NewLinear())
	r.Register("direct", NewDirect())
	return r
}

// Register adds or replaces the strategy for name (normalized). s must
// implement Strategy, LegacyStrategy, or both; anything else is ignored.
func (r *Registry) Register(name string, s interface{}) {
	_, isStrategy := s.(Strategy)
	_, isLegacy := s.(LegacyStrategy)
	if !isStrategy && !isLegacy {
		r.log.Info("refusing to register value implementing neither Strategy nor LegacyStrategy", "name", name)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[helpers.NormalizeName(name)] = s
}

// Resolve looks up name, normalized and lower-cased. On a miss it logs a
// warning and substitutes DefaultMethod, returning the actual method name
// the caller should rewrite the snapshot with so downstream logging/state
// reflects the strategy that really ran.
func (r *Registry) Resolve(name string) (interface{}, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := helpers.NormalizeName(name)
	if s, ok := r.m[key]; ok {
		return s, key
	}
	r.log.Info("unknown scaling method, falling back to default",
		"requested", name, "default", DefaultMethod)
	defaultKey := helpers.NormalizeName(DefaultMethod)
	return r.m[defaultKey], defaultKey
}
