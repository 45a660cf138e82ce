package booking

import "sync"

// Registry maps session slots to their desks.  A desk is created empty the
// first time a slot is seen and dropped at logout.
type Registry struct {
	mu    sync.Mutex
	desks map[string]*Desk
	newFn func() *Desk
}

// NewRegistry returns a registry that builds desks with newFn.
func NewRegistry(newFn func() *Desk) *Registry {
	if newFn == nil {
		panic("nil desk constructor passed to NewRegistry")
	}
	return &Registry{desks: make(map[string]*Desk), newFn: newFn}
}

// Desk returns the desk for slot, creating it on first use.
func (r *Registry) Desk(slot string) *Desk {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.desks[slot]
	if !ok {
		d = r.newFn()
		r.desks[slot] = d
	}
	return d
}

// Drop forgets the desk of slot.  Dropping an unknown slot is a no-op.
func (r *Registry) Drop(slot string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.desks, slot)
}

// Len reports how many desks are live.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.desks)
}
