package registry

import "sync"

// Registry is a global key-value store with per-key locking. Extension
// registries (cmd, cron, api) register during init() and are locked once the
// application applies them; later registration panics at the call site.
type Registry struct {
	values sync.Map
	locked sync.Map // key -> struct{}
}

// GlobalRegistry is the process-wide registry instance.
var GlobalRegistry = &Registry{}

// GetGlobal returns the value stored for a key.
func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	return r.values.Load(key)
}

// SetGlobal stores a value for a key. Callers check IsLocked first.
func (r *Registry) SetGlobal(key string, value interface{}) {
	r.values.Store(key, value)
}

// Lock marks a key immutable.
func (r *Registry) Lock(key string) {
	r.locked.Store(key, struct{}{})
}

// IsLocked reports whether a key has been locked.
func (r *Registry) IsLocked(key string) bool {
	_, ok := r.locked.Load(key)
	return ok
}

// UnlockForTesting removes the lock on a key (tests only).
func (r *Registry) UnlockForTesting(key string) {
	r.locked.Delete(key)
}
