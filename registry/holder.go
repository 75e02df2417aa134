package registry

import "sync/atomic"

// Holder publishes the current registry. A reload builds a new registry
// wholesale and swaps it in, readers never observe a partially loaded one.
type Holder struct {
	current atomic.Pointer[Registry]
}

// NewHolder creates a holder publishing r, which is frozen
func NewHolder(r *Registry) *Holder {
	h := &Holder{}
	if r != nil {
		r.Freeze()
		h.current.Store(r)
	}
	return h
}

// Load returns the published registry, nil before the first Swap
func (h *Holder) Load() *Registry {
	return h.current.Load()
}

// Swap publishes r, freezing it first, and returns the registry it replaces
func (h *Holder) Swap(r *Registry) *Registry {
	if r != nil {
		r.Freeze()
	}
	return h.current.Swap(r)
}
